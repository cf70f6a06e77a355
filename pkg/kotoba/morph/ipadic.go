package morph

// IPADIC is the tag scheme of the IPA dictionary used by MeCab and
// kagome-dict/ipa. Its hierarchy lines up level by level with the variants,
// so it needs no overrides.
var IPADIC = &Profile{
	Name:  "ipadic",
	Unset: "*",
	Majors: map[string]Major{
		"名詞":   Noun,
		"接頭詞":  Prefix,
		"動詞":   Verb,
		"形容詞":  Adjective,
		"副詞":   Adverb,
		"連体詞":  Adnominal,
		"接続詞":  Conjunction,
		"助詞":   Particle,
		"助動詞":  AuxVerb,
		"感動詞":  Interjection,
		"記号":   Symbol,
		"フィラー": Filler,
		"その他":  Other,
	},
	Subs: map[string]Sub{
		"一般":           Common,
		"固有名詞":         Proper,
		"代名詞":          Pronoun,
		"数":            Numeral,
		"接尾":           Suffix,
		"非自立":          NonIndependent,
		"特殊":           Special,
		"副詞可能":         AdverbialPossible,
		"サ変接続":         SahenConnection,
		"形容動詞語幹":       AdjectivalNounStem,
		"ナイ形容詞語幹":      NaiAdjectiveStem,
		"助動詞語幹":        AuxVerbStem,
		"接続詞的":         ConjunctionLike,
		"動詞非自立的":       VerbNonIndependentLike,
		"引用文字列":        Quotation,
		"自立":           Independent,
		"格助詞":          CaseMarking,
		"係助詞":          Binding,
		"接続助詞":         Conjunctive,
		"終助詞":          SentenceFinal,
		"副助詞":          AdverbialParticle,
		"並立助詞":         Parallel,
		"間投助詞":         Interjective,
		"副詞化":          Adverbializer,
		"連体化":          Adnominalizer,
		"副助詞／並立助詞／終助詞": AdverbialParallelFinal,
		"句点":           Period,
		"読点":           Comma,
		"空白":           Space,
		"括弧開":          BracketOpen,
		"括弧閉":          BracketClose,
		"アルファベット":      Alphabet,
		"名詞接続":         NounConnection,
		"動詞接続":         VerbConnection,
		"形容詞接続":        AdjectiveConnection,
		"数接続":          NumeralConnection,
		"助詞類接続":        ParticleConnection,
		"助数詞":          Counter,
		"人名":           PersonName,
		"組織":           Organization,
		"地域":           Region,
		"国":            Country,
		"姓":            Surname,
		"名":            GivenName,
		"引用":           Citation,
		"連語":           Compound,
		"縮約":           Contraction,
	},
	ConjTypes: map[string]ConjType{
		"特殊・タ":  ConjTa,
		"特殊・ナイ": ConjNai,
		"特殊・タイ": ConjTai,
		"特殊・マス": ConjMasu,
		"特殊・ヌ":  ConjNu,
		"特殊・ダ":  ConjDa,
		"特殊・デス": ConjDesu,
		"サ変・スル": ConjSahenSuru,
		"不変化型":  ConjInvariant,
	},
	ConjForms: map[string]ConjForm{
		"基本形":     FormBase,
		"体言接続":    FormAttributive,
		"連用形":     FormContinuative,
		"連用タ接続":   FormContinuative,
		"連用テ接続":   FormContinuative,
		"連用デ接続":   FormContinuative,
		"連用ゴザイ接続": FormContinuative,
		"命令ｅ":     FormImperative,
		"命令ｒｏ":    FormImperative,
		"命令ｙｏ":    FormImperative,
		"命令ｉ":     FormImperativeI,
	},
	ChainParticles:   []string{"て", "で", "ば"},
	NumberSeparators: []string{".", "．", ",", "，"},
	FractionCounter:  "分",
	FractionParticle: "の",
	VolitionalBases:  []string{"う", "よう"},
}

func init() {
	Register(IPADIC)
}
