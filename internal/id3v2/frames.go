package id3v2

// Strategy selects how a frame body is rendered.
type Strategy int

const (
	// StrategyString decodes encoding-byte text frames.
	StrategyString Strategy = iota
	// StrategyOpaque renders printable ASCII or hex, for URLs, identifiers
	// and binary frames.
	StrategyOpaque
	// StrategyComment decodes [encoding][language][description\0][text].
	StrategyComment
	// StrategyUserURL decodes [encoding][description\0][url].
	StrategyUserURL
	// StrategyPicture summarises an attached picture.
	StrategyPicture
	// StrategyGenre decodes text and resolves "(17)" style genre references.
	StrategyGenre
)

func (s Strategy) String() string {
	switch s {
	case StrategyString:
		return "string"
	case StrategyOpaque:
		return "opaque"
	case StrategyComment:
		return "comment"
	case StrategyUserURL:
		return "user-url"
	case StrategyPicture:
		return "picture"
	case StrategyGenre:
		return "genre"
	default:
		return "unknown"
	}
}

// Frame is a dispatch table entry.
type Frame struct {
	Name     string
	Strategy Strategy
}

// framesV22 holds the 3-character ids of ID3v2.2.
var framesV22 = map[string]Frame{
	"TT1": {"group", StrategyString},
	"TT2": {"title", StrategyString},
	"TT3": {"subtitle", StrategyString},
	"TP1": {"artist", StrategyString},
	"TP2": {"performer", StrategyString},
	"TP3": {"conductor", StrategyString},
	"TP4": {"remixer", StrategyString},
	"TAL": {"album", StrategyString},
	"TYE": {"year", StrategyString},
	"TCM": {"composer", StrategyString},
	"TXT": {"writer", StrategyString},
	"TPA": {"setof", StrategyString},
	"TRK": {"track", StrategyString},
	"TCO": {"ctype", StrategyGenre},
	"TEN": {"encode", StrategyString},
	"TSS": {"setting", StrategyString},
	"TDA": {"date", StrategyString},
	"TIM": {"time", StrategyString},
	"TKE": {"music key", StrategyString},
	"TBP": {"bpm", StrategyString},
	"TCR": {"copyright", StrategyString},
	"TLE": {"length", StrategyString},
	"TMT": {"mtype", StrategyString},
	"TOA": {"o art", StrategyString},
	"TOT": {"o album", StrategyString},
	"TOF": {"orig filename", StrategyString},
	"TRC": {"isrc", StrategyString},
	"TXX": {"user def", StrategyString},
	"TCP": {"iTunes", StrategyString},
	"COM": {"comment", StrategyComment},
	"ULT": {"lyrics", StrategyComment},
	"WXX": {"user url", StrategyUserURL},
	"PIC": {"picture", StrategyPicture},
	"GEO": {"encapsul", StrategyString},
	// no character decoding required
	"WAR": {"official url", StrategyOpaque},
	"WAF": {"official url", StrategyOpaque},
	"WAS": {"official url", StrategyOpaque},
	"WCM": {"cm url", StrategyOpaque},
	"WCP": {"copyright", StrategyOpaque},
	"WPB": {"publish url", StrategyOpaque},
	"UFI": {"uniq file", StrategyOpaque},
	"CNT": {"play count", StrategyOpaque},
	"POP": {"popularimeter", StrategyOpaque},
	"MCI": {"music cd id", StrategyOpaque},
}

// framesV23 holds the 4-character ids shared by ID3v2.3 and ID3v2.4.
var framesV23 = map[string]Frame{
	"TIT1": {"group", StrategyString},
	"TIT2": {"title", StrategyString},
	"TIT3": {"subtitle", StrategyString},
	"TPE1": {"artist", StrategyString},
	"TPE2": {"artist2", StrategyString},
	"TPE3": {"conductor", StrategyString},
	"TPE4": {"remixer", StrategyString},
	"TALB": {"album", StrategyString},
	"TPOS": {"set of", StrategyString},
	"TYER": {"year", StrategyString},
	"TRCK": {"track", StrategyString},
	"TCON": {"ctype", StrategyGenre},
	"TCOP": {"copyright", StrategyString},
	"TENC": {"encode", StrategyString},
	"TOPE": {"o art", StrategyString},
	"TOAL": {"o album", StrategyString},
	"TOLY": {"o writer", StrategyString},
	"TORY": {"o year", StrategyString},
	"TCOM": {"composer", StrategyString},
	"TMED": {"mtype", StrategyString},
	"TLEN": {"length", StrategyString},
	"TSSE": {"setting", StrategyString},
	"TXXX": {"user def", StrategyString},
	"TDRC": {"rec time", StrategyString},
	"TDOR": {"orig time", StrategyString},
	"TDRL": {"release time", StrategyString},
	"TRDA": {"rec dates", StrategyString},
	"TBPM": {"bpm", StrategyString},
	"TEXT": {"writer", StrategyString},
	"TDEN": {"enc time", StrategyString},
	"TDTG": {"tag time", StrategyString},
	"TPUB": {"publisher", StrategyString},
	"TIME": {"time", StrategyString},
	"TKEY": {"music key", StrategyString},
	"TDAT": {"date", StrategyString},
	"TFLT": {"file type", StrategyString},
	"TSOP": {"perf sort", StrategyString},
	"TSOA": {"album sort", StrategyString},
	"TSOT": {"title sort", StrategyString},
	"TSO2": {"artist2 sort", StrategyString},
	"TSOC": {"composer sort", StrategyString},
	"TOFN": {"orig filename", StrategyString},
	"TSRC": {"isrc", StrategyString},
	"TIPL": {"people", StrategyString},
	"TMCL": {"musicians", StrategyString},
	"TMOO": {"mood", StrategyString},
	"TLAN": {"language", StrategyString},
	"TSST": {"set subtitle", StrategyString},
	"TRSN": {"radio name", StrategyString},
	"TRSO": {"radio owner", StrategyString},
	"TOWN": {"owner", StrategyString},
	"TPRO": {"produced", StrategyString},
	"TSIZ": {"size", StrategyString},
	"COMM": {"comment", StrategyComment},
	"USLT": {"lyrics", StrategyComment},
	"WXXX": {"user url", StrategyUserURL},
	// no character decoding required
	"PRIV": {"private", StrategyOpaque},
	"WOAR": {"official url", StrategyOpaque},
	"UFID": {"uniq file", StrategyOpaque},
	"WCOM": {"cm url", StrategyOpaque},
	"WCOP": {"copyright", StrategyOpaque},
	"WOAF": {"official url", StrategyOpaque},
	"WOAS": {"official url", StrategyOpaque},
	"WPAY": {"pay url", StrategyOpaque},
	"WORS": {"radio url", StrategyOpaque},
	"WPUB": {"publish url", StrategyOpaque},
	// including binary data
	"APIC": {"picture", StrategyPicture},
	"GEOB": {"encapsul", StrategyString},
	"MCDI": {"music cd id", StrategyOpaque},
	"POPM": {"popularimeter", StrategyOpaque},
	"PCNT": {"play count", StrategyOpaque},
	"SYLT": {"sync lyrics", StrategyOpaque},
	"ETCO": {"event timing", StrategyOpaque},
	"RVA2": {"volume adj", StrategyOpaque},
	"CHAP": {"chapter", StrategyOpaque},
	"CTOC": {"toc", StrategyOpaque},
	// iTunes specific
	"TCMP": {"iTunes", StrategyString},
	// seen in the wild, meaning unclear
	"XIMP": {"ximp", StrategyString},
	"YIMP": {"yimp", StrategyString},
}

// LookupV22 returns the dispatch entry for an ID3v2.2 frame id.
func LookupV22(id string) (Frame, bool) {
	f, ok := framesV22[id]
	return f, ok
}

// LookupV23 returns the dispatch entry for an ID3v2.3 or ID3v2.4 frame id.
func LookupV23(id string) (Frame, bool) {
	f, ok := framesV23[id]
	return f, ok
}

// Lookup returns the dispatch entry for id under the given major version.
func Lookup(major byte, id string) (Frame, bool) {
	if major == 2 {
		return LookupV22(id)
	}
	return LookupV23(id)
}
