package reputation

import (
	"fmt"
	"strconv"
	"strings"
)

// Zone selects which Spamhaus blocklist a lookup (and its code table)
// belongs to.
type Zone string

const (
	ZoneZEN Zone = "zen"
	ZoneDBL Zone = "dbl"
)

// Risk is the coarse verdict derived from the matched codes.
type Risk string

const (
	RiskClean Risk = "clean"
	RiskLow   Risk = "low"
	RiskHigh  Risk = "high"
	// RiskError marks an unusable lookup (rejected DQS key). It must
	// never be presented as clean or listed.
	RiskError Risk = "error"
)

// Listing is one decoded return code.
type Listing struct {
	Code    int    `json:"code"`
	Dataset string `json:"dataset"`
	Reason  string `json:"reason"`
}

// Classification is the aggregate verdict over all answers of one lookup.
type Classification struct {
	Listed    bool      `json:"listed"`
	AuthError bool      `json:"auth_error"`
	Listings  []Listing `json:"listings,omitempty"`
	Risk      Risk      `json:"risk"`
}

// Spamhaus encodes the listing reason in the last octet of a loopback
// address. One octet can match several datasets; the tables below are
// keyed on the octet and initialized once.
var zenCodes = map[int]Listing{
	2:  {2, "SBL", "spam source"},
	3:  {3, "CSS", "compromised or snowshoe spam source"},
	4:  {4, "XBL", "exploited host (open proxy or malware)"},
	5:  {5, "XBL", "exploited host (open proxy or malware)"},
	6:  {6, "XBL", "exploited host (open proxy or malware)"},
	7:  {7, "XBL", "exploited host (open proxy or malware)"},
	9:  {9, "SBL", "hijacked netblock (DROP)"},
	10: {10, "PBL", "dynamic or end-user address space (ISP policy)"},
	11: {11, "PBL", "address space without mail policy (Spamhaus)"},
	20: {20, "AuthBL", "compromised credentials (auth abuse)"},
}

var dblCodes = map[int]Listing{
	2:   {2, "DBL", "spam domain"},
	4:   {4, "DBL", "phishing domain"},
	5:   {5, "DBL", "malware domain"},
	6:   {6, "DBL", "botnet C2 domain"},
	102: {102, "DBL", "abused legitimate domain (spam)"},
	103: {103, "DBL", "abused legitimate domain (phishing)"},
	104: {104, "DBL", "abused legitimate domain (malware)"},
	105: {105, "DBL", "abused legitimate domain (botnet C2)"},
	106: {106, "DBL", "abused legitimate domain (open proxy)"},
}

// authErrorCode is the sentinel last octet signaling a rejected DQS key.
var authErrorCode = map[Zone]int{
	ZoneZEN: 1,
	ZoneDBL: 255,
}

// highRiskCodes are the octets that carry an active-threat meaning.
var highRiskCodes = map[Zone]map[int]bool{
	ZoneZEN: {2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 9: true},
	ZoneDBL: {2: true, 4: true, 5: true, 6: true},
}

// decode resolves one return code against the zone's table, falling back
// to the documented ranges and then to a generic entry.
func decode(zone Zone, code int) Listing {
	var table map[int]Listing
	if zone == ZoneZEN {
		table = zenCodes
	} else {
		table = dblCodes
	}
	if l, ok := table[code]; ok {
		return l
	}
	if zone == ZoneDBL {
		switch {
		case code >= 2 && code <= 99:
			return Listing{code, "DBL", "bad reputation domain"}
		case code >= 102 && code <= 199:
			return Listing{code, "DBL", "abused legitimate domain"}
		}
	}
	return Listing{code, strings.ToUpper(string(zone)), "listed"}
}

// lastOctet extracts the trailing dot-separated integer of an A-record
// rdata string ("127.0.0.4" -> 4).
func lastOctet(addr string) (int, error) {
	i := strings.LastIndexByte(addr, '.')
	if i < 0 || i == len(addr)-1 {
		return 0, fmt.Errorf("no trailing octet in %q", addr)
	}
	return strconv.Atoi(addr[i+1:])
}

// Classify maps the A-record answers of one blocklist lookup to a
// verdict. The zone's auth-error sentinel wins over everything else:
// a rejected key means the whole lookup is unusable, regardless of any
// other codes in the answer set. Listed is true only when at least one
// non-error code decoded; unparseable answers are skipped.
func Classify(zone Zone, addrs []string) Classification {
	c := Classification{Risk: RiskClean}
	for _, addr := range addrs {
		code, err := lastOctet(strings.TrimSpace(addr))
		if err != nil {
			continue
		}
		if code == authErrorCode[zone] {
			c.AuthError = true
			continue
		}
		c.Listings = append(c.Listings, decode(zone, code))
	}
	if c.AuthError {
		return Classification{AuthError: true, Risk: RiskError}
	}
	if len(c.Listings) == 0 {
		return c
	}
	c.Listed = true
	c.Risk = RiskLow
	for _, l := range c.Listings {
		if highRiskCodes[zone][l.Code] {
			c.Risk = RiskHigh
			break
		}
	}
	return c
}
