package grocery

// Language groups the unit words of one language.
type Language struct {
	Name  string
	Units []string
}

// Languages lists unit words per language. The flattened order is the
// alternation order of the segmentation pattern.
var Languages = []Language{
	{"english", []string{"kg", "g", "gram", "grams", "ml", "l", "litre", "liter", "packet", "packets", "piece", "pieces", "dozen"}},
	{"hindi", []string{"किलो", "ग्राम", "लीटर", "पैकेट", "टुकड़ा", "दरजन"}},
	{"odia", []string{"କିଲୋ", "ଗ୍ରାମ", "ଲିଟର", "ପ୍ୟାକେଟ୍", "ଟୁକୁଡ଼ା", "ଡଜନ୍"}},
	{"bengali", []string{"কেজি", "গ্রাম", "লিটার", "প্যাকেট", "পিস", "ডজন"}},
	{"tamil", []string{"கிலோ", "கிராம்", "லிட்டர்", "பாக்கெட்", "துண்டு", "டஜன்"}},
	{"telugu", []string{"కిలో", "గ్రాము", "లీటరు", "ప్యాకెట్", "ముక్క", "డజను"}},
	{"malayalam", []string{"കിലോ", "ഗ്രാം", "ലിറ്റര്", "പാക്കറ്റ്", "തുണ്ട്", "ഡസൻ"}},
	{"kannada", []string{"ಕಿಲೋ", "ಗ್ರಾಂ", "ಲೀಟರ್", "ಪ್ಯಾಕೆಟ್", "ತುಗುಡು", "ಡಜನ್"}},
	{"marathi", []string{"किलो", "ग्रॅम", "लिटर", "पॅकेट", "तुकडा", "डझन"}},
}

// Fillers are politeness and address words stripped before segmentation.
var Fillers = []string{"جی", "गये", "गए", "गा", "గారు", "சார்", "साहेब", "ಅಯ್ಯಾ", "sir", "ma'am", "madam", "जी", "bhai", "bhayya"}

var (
	units   = flattenUnits()
	unitSet = toSet(units)
)

// Units returns every unit word in lexicon order.
func Units() []string {
	out := make([]string, len(units))
	copy(out, units)
	return out
}

// IsUnit reports whether word is exactly a lexicon unit.
func IsUnit(word string) bool {
	_, ok := unitSet[word]
	return ok
}

func flattenUnits() []string {
	var out []string
	for _, lang := range Languages {
		out = append(out, lang.Units...)
	}
	return out
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
