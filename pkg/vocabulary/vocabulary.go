// Package vocabulary holds the built-in YDS word list used to seed an empty
// database, plus the linking-word bank fed into the example-sentence prompt.
package vocabulary

// Words is the starter set of academic vocabulary for YDS preparation.
var Words = []string{
	"abandon", "abstract", "abundant", "accelerate", "accommodate",
	"accomplish", "accumulate", "accurate", "acknowledge", "acquire",
	"adequate", "adjacent", "advocate", "aggregate", "alleviate",
	"ambiguous", "ample", "anticipate", "apparent", "arbitrary",
	"assess", "assume", "attain", "attribute", "augment",
	"benevolent", "bias", "candid", "coherent", "coincide",
	"commence", "compel", "compensate", "comprehensive", "comprise",
	"conceive", "concise", "concurrent", "confine", "consecutive",
	"consensus", "considerable", "consolidate", "conspicuous", "constitute",
	"constrain", "contemplate", "contradict", "conventional", "converge",
	"convey", "crucial", "cumulative", "deduce", "deficient",
	"deliberate", "denote", "deplete", "deteriorate", "deviate",
	"diminish", "discrete", "disperse", "disrupt", "distort",
	"diverse", "elaborate", "elicit", "eliminate", "eloquent",
	"emerge", "emphasize", "empirical", "endorse", "enhance",
	"equivalent", "eradicate", "evaluate", "evident", "exacerbate",
	"exceed", "explicit", "exploit", "facilitate", "feasible",
	"fluctuate", "fundamental", "genuine", "hamper", "hinder",
	"hypothesis", "imminent", "implement", "implicit", "imply",
	"inadequate", "incentive", "incorporate", "indigenous", "inevitable",
	"infer", "inherent", "inhibit", "initiate", "innovative",
	"integral", "integrate", "intricate", "intrinsic", "legitimate",
	"magnitude", "mandatory", "mitigate", "notion", "novel",
	"obsolete", "obstacle", "offset", "paradigm", "perceive",
	"persistent", "pervasive", "phenomenon", "plausible", "precede",
	"precise", "predominant", "preliminary", "prevalent", "profound",
	"proliferate", "prominent", "prompt", "redundant", "reinforce",
	"reluctant", "render", "resilient", "retain", "rigorous",
	"scarce", "scrutinize", "simultaneous", "sophisticated", "sparse",
	"speculate", "subsequent", "substantial", "subtle", "sufficient",
	"suppress", "sustain", "tangible", "tentative", "thrive",
	"transient", "ubiquitous", "undermine", "uniform", "utilize",
	"vague", "verify", "viable", "vulnerable", "widespread",
}

// LinkingWords are the academic connectors the content prompt asks the model
// to use when building the two example sentences.
var LinkingWords = []string{
	"however", "therefore", "furthermore", "moreover", "nevertheless",
	"consequently", "in contrast", "similarly", "on the other hand",
	"as a result", "in addition", "whereas", "although", "despite",
	"thus", "hence", "accordingly", "subsequently", "indeed",
}
