package domain

// TaxonomyDocument is the on-disk shape of the category taxonomy
// (L1 > L2 > L3 hierarchy with per-leaf codes and HSN assignments).
type TaxonomyDocument struct {
	Categories []TaxonomyL1 `json:"categories"`
}

type TaxonomyL1 struct {
	L1            string       `json:"l1"`
	L1Code        string       `json:"l1_code"`
	Subcategories []TaxonomyL2 `json:"subcategories"`
}

type TaxonomyL2 struct {
	L2    string       `json:"l2"`
	Items []TaxonomyL3 `json:"items"`
}

type TaxonomyL3 struct {
	L3     string `json:"l3"`
	L3Code string `json:"l3_code"`
	HSN    string `json:"hsn"`
}

// TaxonomyEntry is one indexed leaf of the taxonomy. CategoryCode is globally
// unique; HSN codes may be shared across leaves.
type TaxonomyEntry struct {
	L1           string
	L2           string
	L3           string
	CategoryCode string
	HSNCode      string
	CategoryPath string // "L1 > L2 > L3"
}
