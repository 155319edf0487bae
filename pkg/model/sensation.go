package model

// Maximum CATA descriptor selections per category on the CVA descriptive
// form.
const (
	MaxFragranceDescriptors  = 5
	MaxFlavorDescriptors     = 5
	MaxAftertasteDescriptors = 5
	MaxMainTastes            = 2
	MaxMouthfeelDescriptors  = 2
)

// TraditionalSCA is the pre-2024 SCA cupping form. Quality sections run 6-10
// in 0.25 increments, the cup sections award 2 points per clean cup, and
// taint/fault cups subtract 2 and 4 points each.
type TraditionalSCA struct {
	Fragrance  float64 `json:"fragrance"  validate:"min=6,max=10,step025"`
	Flavor     float64 `json:"flavor"     validate:"min=6,max=10,step025"`
	Aftertaste float64 `json:"aftertaste" validate:"min=6,max=10,step025"`
	Acidity    float64 `json:"acidity"    validate:"min=6,max=10,step025"`
	Body       float64 `json:"body"       validate:"min=6,max=10,step025"`
	Balance    float64 `json:"balance"    validate:"min=6,max=10,step025"`
	Overall    float64 `json:"overall"    validate:"min=6,max=10,step025"`
	Uniformity float64 `json:"uniformity" validate:"min=0,max=10,step2"`
	CleanCup   float64 `json:"cleanCup"   validate:"min=0,max=10,step2"`
	Sweetness  float64 `json:"sweetness"  validate:"min=0,max=10,step2"`
	TaintCups  int     `json:"taintCups"  validate:"min=0,max=5"`
	FaultCups  int     `json:"faultCups"  validate:"min=0,max=5"`

	FinalScore float64 `json:"finalScore"`
}

// CVADescriptive is the SCA 103-P descriptive assessment: 0-15 intensities
// plus check-all-that-apply descriptor lists with fixed caps.
type CVADescriptive struct {
	FragranceIntensity  int `json:"fragranceIntensity"  validate:"min=0,max=15"`
	AromaIntensity      int `json:"aromaIntensity"      validate:"min=0,max=15"`
	FlavorIntensity     int `json:"flavorIntensity"     validate:"min=0,max=15"`
	AftertasteIntensity int `json:"aftertasteIntensity" validate:"min=0,max=15"`
	AcidityIntensity    int `json:"acidityIntensity"    validate:"min=0,max=15"`
	SweetnessIntensity  int `json:"sweetnessIntensity"  validate:"min=0,max=15"`
	MouthfeelIntensity  int `json:"mouthfeelIntensity"  validate:"min=0,max=15"`

	FragranceDescriptors  []string `json:"fragranceDescriptors,omitempty"  validate:"max=5"`
	FlavorDescriptors     []string `json:"flavorDescriptors,omitempty"     validate:"max=5"`
	AftertasteDescriptors []string `json:"aftertasteDescriptors,omitempty" validate:"max=5"`
	MainTastes            []string `json:"mainTastes,omitempty"            validate:"max=2"`
	MouthfeelDescriptors  []string `json:"mouthfeelDescriptors,omitempty"  validate:"max=2"`
}

// CVAAffective is the SCA 103-P affective assessment: nine 1-9 impression of
// quality items plus per-cup uniformity and defect counts.
type CVAAffective struct {
	Fragrance  int `json:"fragrance"  validate:"min=1,max=9"`
	Aroma      int `json:"aroma"      validate:"min=1,max=9"`
	Flavor     int `json:"flavor"     validate:"min=1,max=9"`
	Aftertaste int `json:"aftertaste" validate:"min=1,max=9"`
	Acidity    int `json:"acidity"    validate:"min=1,max=9"`
	Sweetness  int `json:"sweetness"  validate:"min=1,max=9"`
	Mouthfeel  int `json:"mouthfeel"  validate:"min=1,max=9"`
	Balance    int `json:"balance"    validate:"min=1,max=9"`
	Overall    int `json:"overall"    validate:"min=1,max=9"`

	NonUniformCups int `json:"nonUniformCups" validate:"min=0,max=5"`
	DefectiveCups  int `json:"defectiveCups"  validate:"min=0,max=5"`

	Score float64 `json:"score"`
}

// QuickTasting is the lightweight slider form: 0-10 in half-point steps.
type QuickTasting struct {
	Aroma   float64 `json:"aroma"   validate:"min=0,max=10,step05"`
	Flavor  float64 `json:"flavor"  validate:"min=0,max=10,step05"`
	Body    float64 `json:"body"    validate:"min=0,max=10,step05"`
	Overall float64 `json:"overall" validate:"min=0,max=10,step05"`
	Note    string  `json:"note,omitempty" validate:"max=500"`
}
