package entry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Coins is a price split by denomination.
type Coins struct {
	PP int64 `json:"pp,omitempty"`
	GP int64 `json:"gp,omitempty"`
	SP int64 `json:"sp,omitempty"`
	CP int64 `json:"cp,omitempty"`
}

var coinPattern = regexp.MustCompile(`(\d+)\s*([pgsc]p)`)

// ParseCoins reads a price string such as "1,200 gp 5 sp". Unknown text is
// ignored; an unparseable string yields zero coins.
func ParseCoins(s string) Coins {
	var c Coins
	s = strings.ReplaceAll(strings.ToLower(s), ",", "")
	for _, m := range coinPattern.FindAllStringSubmatch(s, -1) {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		switch m[2] {
		case "pp":
			c.PP += n
		case "gp":
			c.GP += n
		case "sp":
			c.SP += n
		case "cp":
			c.CP += n
		}
	}
	return c
}

// CopperValue returns the total value in copper pieces.
func (c Coins) CopperValue() int64 {
	return c.PP*1000 + c.GP*100 + c.SP*10 + c.CP
}

// String formats the non-zero denominations from largest to smallest.
func (c Coins) String() string {
	var parts []string
	for _, d := range []struct {
		n    int64
		unit string
	}{{c.PP, "pp"}, {c.GP, "gp"}, {c.SP, "sp"}, {c.CP, "cp"}} {
		if d.n != 0 {
			parts = append(parts, fmt.Sprintf("%d %s", d.n, d.unit))
		}
	}
	if len(parts) == 0 {
		return "0 gp"
	}
	return strings.Join(parts, ", ")
}
