package search

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/jonwraymond/compendium/entry"
)

// computeFingerprint generates a stable hash of the entry slice.
// The fingerprint changes when any indexed or stored field changes, so a
// reload with identical packs keeps the existing Bleve index.
func computeFingerprint(entries []entry.Entry) string {
	h := sha256.New()

	for _, e := range entries {
		h.Write([]byte(e.UUID))
		h.Write([]byte{0}) // separator

		h.Write([]byte(e.Name))
		h.Write([]byte{0})
		h.Write([]byte(e.OriginalName))
		h.Write([]byte{0})
		h.Write([]byte(e.Image))
		h.Write([]byte{0})
		h.Write([]byte(e.Rarity))
		h.Write([]byte{0})
		h.Write([]byte(e.ActionGlyph))
		h.Write([]byte{0})

		h.Write([]byte(optionalInt(e.Level)))
		h.Write([]byte{0})
		h.Write([]byte(optionalInt(e.Rank)))
		h.Write([]byte{0})
		if e.Price != nil {
			h.Write([]byte(strconv.FormatInt(e.Price.CopperValue(), 10)))
		}
		h.Write([]byte{0})

		// Tags are sorted for order-independence.
		h.Write([]byte(strings.Join(e.Domains.Sorted(), "\x01")))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
