package morph

// UniDic is the tag scheme of kagome-dict/uni. UniDic splits classes that
// IPADIC keeps under the noun hierarchy (pronouns, adjectival nouns, suffixes)
// into majors of their own, and keys the interesting distinction on the
// second level, so most of the mapping is done with overrides.
var UniDic = &Profile{
	Name:  "unidic",
	Unset: "*",
	Majors: map[string]Major{
		"名詞":   Noun,
		"接頭辞":  Prefix,
		"動詞":   Verb,
		"形容詞":  Adjective,
		"副詞":   Adverb,
		"連体詞":  Adnominal,
		"接続詞":  Conjunction,
		"助詞":   Particle,
		"助動詞":  AuxVerb,
		"感動詞":  Interjection,
		"記号":   Symbol,
		"補助記号": Symbol,
	},
	Subs: map[string]Sub{
		"一般":   Common,
		"普通名詞": Common,
		"固有名詞": Proper,
		"数詞":   Numeral,
		"格助詞":  CaseMarking,
		"係助詞":  Binding,
		"接続助詞": Conjunctive,
		"終助詞":  SentenceFinal,
		"副助詞":  AdverbialParticle,
		"準体助詞": Adnominalizer,
		"句点":   Period,
		"読点":   Comma,
		"括弧開":  BracketOpen,
		"括弧閉":  BracketClose,
		"文字":   Alphabet,
		"ＡＡ":   Special,
		"人名":   PersonName,
		"地名":   Region,
		"国":    Country,
		"姓":    Surname,
		"名":    GivenName,
	},
	Overrides: []Override{
		{Path: []string{"名詞", "普通名詞", "サ変可能"}, Category: Category{Major: Noun, Sub1: SahenConnection}},
		{Path: []string{"名詞", "普通名詞", "サ変形状詞可能"}, Category: Category{Major: Noun, Sub1: SahenConnection}},
		{Path: []string{"名詞", "普通名詞", "形状詞可能"}, Category: Category{Major: Noun, Sub1: AdjectivalNounStem}},
		{Path: []string{"名詞", "普通名詞", "副詞可能"}, Category: Category{Major: Noun, Sub1: AdverbialPossible}},
		{Path: []string{"名詞", "普通名詞", "助数詞可能"}, Category: Category{Major: Noun, Sub1: Common, Sub2: Counter}},
		{Path: []string{"名詞", "普通名詞"}, Category: Category{Major: Noun, Sub1: Common}},
		{Path: []string{"名詞", "固有名詞", "人名", "姓"}, Category: Category{Major: Noun, Sub1: Proper, Sub2: PersonName, Sub3: Surname}},
		{Path: []string{"名詞", "固有名詞", "人名", "名"}, Category: Category{Major: Noun, Sub1: Proper, Sub2: PersonName, Sub3: GivenName}},
		{Path: []string{"名詞", "固有名詞", "人名"}, Category: Category{Major: Noun, Sub1: Proper, Sub2: PersonName}},
		{Path: []string{"名詞", "固有名詞", "地名", "国"}, Category: Category{Major: Noun, Sub1: Proper, Sub2: Region, Sub3: Country}},
		{Path: []string{"名詞", "固有名詞", "地名"}, Category: Category{Major: Noun, Sub1: Proper, Sub2: Region}},
		{Path: []string{"名詞", "固有名詞"}, Category: Category{Major: Noun, Sub1: Proper}},
		{Path: []string{"名詞", "助動詞語幹"}, Category: Category{Major: Noun, Sub1: AuxVerbStem}},
		{Path: []string{"代名詞"}, Category: Category{Major: Noun, Sub1: Pronoun}},
		{Path: []string{"形状詞", "助動詞語幹"}, Category: Category{Major: Noun, Sub1: AuxVerbStem}},
		{Path: []string{"形状詞"}, Category: Category{Major: Noun, Sub1: AdjectivalNounStem}},
		{Path: []string{"接尾辞", "名詞的", "助数詞"}, Category: Category{Major: Noun, Sub1: Suffix, Sub2: Counter}},
		{Path: []string{"接尾辞", "名詞的", "サ変可能"}, Category: Category{Major: Noun, Sub1: Suffix, Sub2: SahenConnection}},
		{Path: []string{"接尾辞", "名詞的"}, Category: Category{Major: Noun, Sub1: Suffix}},
		{Path: []string{"接尾辞", "形状詞的"}, Category: Category{Major: Noun, Sub1: Suffix, Sub2: AdjectivalNounStem}},
		{Path: []string{"接尾辞", "動詞的"}, Category: Category{Major: Verb, Sub1: Suffix}},
		{Path: []string{"接尾辞", "形容詞的"}, Category: Category{Major: Adjective, Sub1: Suffix}},
		{Path: []string{"動詞", "一般"}, Category: Category{Major: Verb, Sub1: Independent}},
		{Path: []string{"動詞", "非自立可能"}, Category: Category{Major: Verb, Sub1: NonIndependent}},
		{Path: []string{"形容詞", "一般"}, Category: Category{Major: Adjective, Sub1: Independent}},
		{Path: []string{"形容詞", "非自立可能"}, Category: Category{Major: Adjective, Sub1: NonIndependent}},
		{Path: []string{"感動詞", "フィラー"}, Category: Category{Major: Filler}},
		{Path: []string{"空白"}, Category: Category{Major: Symbol, Sub1: Space}},
	},
	ConjTypes: map[string]ConjType{
		"助動詞-タ":  ConjTa,
		"助動詞-ナイ": ConjNai,
		"助動詞-タイ": ConjTai,
		"助動詞-マス": ConjMasu,
		"助動詞-ヌ":  ConjNu,
		"助動詞-ダ":  ConjDa,
		"助動詞-デス": ConjDesu,
		"サ行変格":   ConjSahenSuru,
		"無変化型":   ConjInvariant,
	},
	ConjForms: map[string]ConjForm{
		"終止形-一般":  FormBase,
		"連体形-一般":  FormAttributive,
		"連用形-一般":  FormContinuative,
		"連用形-促音便": FormContinuative,
		"連用形-撥音便": FormContinuative,
		"連用形-イ音便": FormContinuative,
		"連用形-ウ音便": FormContinuative,
		"命令形":     FormImperative,
	},
	ChainParticles:   []string{"て", "で", "ば"},
	NumberSeparators: []string{".", "．", ",", "，"},
	FractionCounter:  "分",
	FractionParticle: "の",
	VolitionalBases:  []string{"う", "よう"},
}

func init() {
	Register(UniDic)
}
