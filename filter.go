package gallery

import "strings"

// DefaultBlocklist is the keyword set used to keep adult content out of
// filtered random picks. Matching is exact-case substring against the
// tags and caption columns; no case folding or normalization happens, so
// the list carries the casing variants it needs.
var DefaultBlocklist = []string{
	"R-18", "NSFW", "Hentai", "血腥", "R18", "性爱", "性交", "淫", "乱伦", "裸胸",
	"露点", "调教", "捆绑", "触手", "高潮", "喷水", "阿黑颜", "颜射", "后宫", "痴汉",
	"NTR", "3P", "Boobs", "Tits", "Nipples", "Breast", "强暴", "做爱", "自慰", "援交",
	"Creampie", "Cum", "Bukkake", "Sex", "Fuck", "Blowjob", "口交", "Handjob", "Paizuri",
	"乳交", "Cunnilingus", "Fellatio", "Masturbation", "Pussy", "Vagina", "Penis", "Dick",
	"Cock", "Genitals", "Pubic", "阴部", "阴茎", "私处", "白虎", "爆乳", "Nude", "Topless",
	"Ahegao", "高潮脸", "X-ray", "断面图", "Mind Break", "恶堕", "坏掉", "透视", "Futa",
	"扶她", "双性", "Tentacle", "BDSM", "Bondage", "束缚", "Scat", "Pregnant", "妊娠",
	"怀孕", "异种", "丸吞", "破れタイツ", "敗北", "快楽堕ち", "寝取られ", "乳出し", "Garter",
	"Lingerie", "Panty", "Stockings", "ふたなり", "輪姦", "母子", "近親", "異種姦", "孕ませ",
	"緊縛", "奴隷", "悪堕ち", "精神崩壊", "セックス", "中出し", "顔射", "イラマチオ", "フェラ",
	"パイズリ", "手コキ", "潮吹き", "絶頂", "アヘ顔", "全裸", "乳首", "ペニス", "ヴァギナ",
	"クリトリス", "触手", "レイプ", "調教", "スカトロ", "パンツ下ろし", "naked", "nipples", "anus",
}

// Condition is one column/pattern exclusion pair of the safe predicate.
type Condition struct {
	Column  string
	Pattern string
}

// ContentFilter turns a fixed keyword blocklist into SQL exclusion
// predicates. The keyword slice is treated as immutable after
// construction and is safe for concurrent reads.
type ContentFilter struct {
	keywords []string
}

// NewContentFilter builds a filter over the given keywords. A nil or
// empty slice yields a filter whose predicate matches everything.
func NewContentFilter(keywords []string) *ContentFilter {
	return &ContentFilter{keywords: keywords}
}

// Keywords returns the configured blocklist.
func (f *ContentFilter) Keywords() []string {
	return f.keywords
}

// SafeConditions returns the ordered exclusion pairs of the safe
// predicate: for each keyword, a (tags, %kw%) pair then a
// (caption, %kw%) pair. All pairs combine conjunctively.
func (f *ContentFilter) SafeConditions() []Condition {
	conds := make([]Condition, 0, 2*len(f.keywords))
	for _, kw := range f.keywords {
		pattern := "%" + kw + "%"
		conds = append(conds, Condition{Column: "tags", Pattern: pattern})
		conds = append(conds, Condition{Column: "caption", Pattern: pattern})
	}
	return conds
}

// SafeClause renders the predicate as a SQL fragment with bound args:
// (tags NOT LIKE ? AND caption NOT LIKE ?) AND ... one group per
// keyword. The empty filter returns an empty clause.
//
// The store opens connections with case_sensitive_like=ON, so NOT LIKE
// here is an exact-case substring exclusion.
func (f *ContentFilter) SafeClause() (string, []any) {
	if len(f.keywords) == 0 {
		return "", nil
	}
	groups := make([]string, 0, len(f.keywords))
	args := make([]any, 0, 2*len(f.keywords))
	for _, kw := range f.keywords {
		groups = append(groups, "(tags NOT LIKE ? AND caption NOT LIKE ?)")
		pattern := "%" + kw + "%"
		args = append(args, pattern, pattern)
	}
	return strings.Join(groups, " AND "), args
}

// Allows reports whether the record would satisfy the safe predicate:
// no blocked keyword appears as a substring of its tags or caption.
func (f *ContentFilter) Allows(img Image) bool {
	for _, kw := range f.keywords {
		if strings.Contains(img.Tags, kw) || strings.Contains(img.Caption, kw) {
			return false
		}
	}
	return true
}
