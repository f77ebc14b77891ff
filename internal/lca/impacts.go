package lca

import "github.com/circulens/circulens/internal/factors"

// tonnesPerKg converts the per-kg calculation basis onto the tonne-km
// transport emission factor.
const tonnesPerKg = 0.001

// ComputeImpacts calculates CO2e, energy, and water impacts for one scenario,
// per kg of final product.
//
// It is a total function: range constraints on inputs are the caller's
// responsibility (InputParams.Validate), and out-of-range values propagate
// through the arithmetic unchecked.
func ComputeImpacts(inputs InputParams, f factors.Factors) Impacts {
	recycled := inputs.RecycledContentFraction.Value
	gridFraction := inputs.EnergyMix.GridFraction.Value
	primaryShare := 1 - recycled

	// CO2e, kg per kg of metal. Energy-related emissions scale with the
	// grid share; the clean remainder is counted as zero-emission.
	co2eMining := primaryShare *
		(f.PrimaryProduction.MiningDirectCO2e +
			f.PrimaryProduction.MiningEnergyMJ*f.PrimaryProduction.GridEmissionFactor*gridFraction)

	co2eProcessing := primaryShare *
		f.PrimaryProduction.ProcessingEnergyMJ * f.PrimaryProduction.GridEmissionFactor * gridFraction

	co2eTransport := inputs.TransportDistanceKm.Value * tonnesPerKg * f.Transport.EmissionFactorPerTkm

	co2eRecyclingCredit := recycled * f.Recycling.CreditCO2e

	// Energy, MJ per kg.
	energyMining := primaryShare * f.PrimaryProduction.MiningEnergyMJ
	energyProcessing := primaryShare * f.PrimaryProduction.ProcessingEnergyMJ
	energyRecycling := recycled * f.Recycling.EnergyMJ

	return Impacts{
		TotalCO2e:   co2eMining + co2eProcessing + co2eTransport + co2eRecyclingCredit,
		TotalEnergy: energyMining + energyProcessing + energyRecycling,
		// Water is a material constant in this dataset, independent of
		// the scenario. Intentional simplification.
		TotalWater: f.OtherImpacts.WaterM3,
		Breakdown: Breakdown{
			CO2e: CO2eBreakdown{
				Mining:          co2eMining,
				Processing:      co2eProcessing,
				Transport:       co2eTransport,
				RecyclingCredit: co2eRecyclingCredit,
			},
			Energy: EnergyBreakdown{
				Mining:     energyMining,
				Processing: energyProcessing,
				Recycling:  energyRecycling,
			},
		},
	}
}
