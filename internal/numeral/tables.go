package numeral

const (
	unitPositions     = 20 // positions in the unit table, up to 千兆
	maxIntegerDigits  = unitPositions - 1
	maxFractionDigits = unitPositions - 1
	currencyPlaces    = 4 // 角, 分, 厘, 毫
	guardPlaces       = currencyPlaces + 1
	groupSize         = 4
)

// table holds every glyph one rendering needs. Tables are built once and
// never modified.
type table struct {
	// digits is indexed by digit value. Index 0 is empty: a zero digit is
	// only ever voiced through zero insertion or the zero glyph.
	digits [10]string

	// units is indexed by position from the right of the integer part.
	units [unitPositions]string

	// fraction names the currency sub-units; nil outside currency mode.
	fraction []string

	zero     string
	negative string
	point    string
	currency string
	even     string

	// pair replaces digits[2] before 千 and group names. Empty disables it.
	pair string

	// bareTen drops a leading 一 before 十 (十五, not 一十五).
	bareTen bool
}

// groupNames are the magnitude names at positions 0, 4, 8, 12 and 16.
type groupNames [unitPositions / groupSize]string

var (
	groupsTraditional = groupNames{"", "萬", "億", "萬億", "兆"}
	groupsSimplified  = groupNames{"", "万", "亿", "万亿", "兆"}
)

// cycleUnits lays out ten/hundred/thousand inside every group of four and
// puts the group name at each group boundary.
func cycleUnits(ten, hundred, thousand string, groups groupNames) [unitPositions]string {
	var units [unitPositions]string
	for j := range units {
		switch j % groupSize {
		case 0:
			units[j] = groups[j/groupSize]
		case 1:
			units[j] = ten
		case 2:
			units[j] = hundred
		case 3:
			units[j] = thousand
		}
	}
	return units
}

var currencyUnits = []string{"角", "分", "厘", "毫"}

// tables is indexed by Script, then by currency mode (0 standard, 1 capital).
var tables = [2][2]*table{
	Traditional: {
		{
			digits:   [10]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"},
			units:    cycleUnits("十", "百", "千", groupsTraditional),
			zero:     "零",
			negative: "負",
			point:    "點",
			pair:     "兩",
			bareTen:  true,
		},
		{
			digits:   [10]string{"", "壹", "貳", "叁", "肆", "伍", "陸", "柒", "捌", "玖"},
			units:    cycleUnits("拾", "佰", "仟", groupsTraditional),
			fraction: currencyUnits,
			zero:     "零",
			negative: "負",
			point:    "點",
			currency: "元",
			even:     "整",
		},
	},
	Simplified: {
		{
			digits:   [10]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"},
			units:    cycleUnits("十", "百", "千", groupsSimplified),
			zero:     "零",
			negative: "负",
			point:    "点",
			pair:     "两",
			bareTen:  true,
		},
		{
			digits:   [10]string{"", "壹", "贰", "叁", "肆", "伍", "陆", "柒", "捌", "玖"},
			units:    cycleUnits("拾", "佰", "仟", groupsSimplified),
			fraction: currencyUnits,
			zero:     "零",
			negative: "负",
			point:    "点",
			currency: "元",
			even:     "整",
		},
	},
}

// lookup returns the table for opts. Unknown scripts fall back to
// Traditional.
func lookup(opts Options) *table {
	script := opts.Script
	if script != Simplified {
		script = Traditional
	}
	mode := 0
	if opts.Currency {
		mode = 1
	}
	return tables[script][mode]
}

func (t *table) ten() string     { return t.units[1] }
func (t *table) hundred() string { return t.units[2] }
