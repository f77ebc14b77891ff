package imputation

// FeatureVector is the one-hot encoding consumed by the decision tree:
// every known feature name mapped to 0 or 1.
type FeatureVector map[string]float64

// allFeatureNames is the closed feature set the tree artifact was fit on.
// The "material_" / "product_type_" / "region_" concatenation convention is
// a load-bearing contract with the artifact: spaces in product types are
// preserved verbatim, never escaped. Any change here requires refitting the
// tree in lockstep.
var allFeatureNames = []string{
	"material_Aluminium", "material_Copper",
	"product_type_Automotive Components", "product_type_Beverage Can",
	"product_type_Building Construction", "product_type_Cookware",
	"product_type_Electronics (PCB)", "product_type_Industrial Cable",
	"product_type_Packaging Foil",
	"region_EU", "region_IN", "region_NA", "region_SEA",
}

// NewFeatureVector one-hot encodes a (material, productType, region) triple.
// Every known feature starts at 0; the entries matching the arguments are
// set to 1. Unrecognized categorical values are ignored silently, leaving
// their group all-zero; rejecting them is the tree walker's soft-miss path,
// not the encoder's job.
func NewFeatureVector(material, productType, region string) FeatureVector {
	fv := make(FeatureVector, len(allFeatureNames))
	for _, name := range allFeatureNames {
		fv[name] = 0
	}

	for _, key := range []string{
		"material_" + material,
		"product_type_" + productType,
		"region_" + region,
	} {
		if _, ok := fv[key]; ok {
			fv[key] = 1
		}
	}

	return fv
}
