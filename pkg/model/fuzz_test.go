package model_test

import (
	"testing"

	"github.com/nexa-assets/nexa/pkg/model"
)

// Run with:
//   go test -fuzz=FuzzParseStatus -fuzztime=30s ./pkg/model/

// FuzzParseStatus checks that any accepted spelling maps onto a known status
// and that the canonical spelling parses back to itself.
func FuzzParseStatus(f *testing.F) {
	f.Add("")
	f.Add("In Stock")
	f.Add("in-repair")
	f.Add("LOST")
	f.Add("Awaiting Re-image")
	f.Add("Lost/Stolen")
	f.Add("\x00assigned")
	f.Add("dispo sed")

	f.Fuzz(func(t *testing.T, s string) {
		st, ok := model.ParseStatus(s)
		if !ok {
			if st != "" {
				t.Errorf("rejected %q but returned %q", s, st)
			}
			return
		}
		if !st.Valid() {
			t.Errorf("ParseStatus(%q) = %q, not a known status", s, st)
		}
		again, ok := model.ParseStatus(string(st))
		if !ok || again != st {
			t.Errorf("canonical %q does not round-trip: %q %v", st, again, ok)
		}
	})
}

func FuzzParseCategory(f *testing.F) {
	f.Add("laptop")
	f.Add("Mobile Device")
	f.Add("other")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		c, ok := model.ParseCategory(s)
		if ok && !c.Valid() {
			t.Errorf("ParseCategory(%q) = %q, not a known category", s, c)
		}
	})
}

// FuzzValidDate checks that ValidDate agrees with ParseDate.
func FuzzValidDate(f *testing.F) {
	f.Add("")
	f.Add("2024-02-29")
	f.Add("2023-02-29")
	f.Add("2024-13-01")
	f.Add("24-01-01")
	f.Add("2024-01-01T00:00:00Z")

	f.Fuzz(func(t *testing.T, s string) {
		valid := model.ValidDate(s)
		if s == "" {
			if !valid {
				t.Error("empty date must be valid")
			}
			return
		}
		_, err := model.ParseDate(s, nil)
		if valid != (err == nil) {
			t.Errorf("ValidDate(%q) = %v but ParseDate err = %v", s, valid, err)
		}
	})
}
