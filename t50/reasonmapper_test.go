package t50

import (
	"reflect"
	"testing"
)

func TestMapReasonsNoFlags(t *testing.T) {
	if got := MapReasons(&Status{}); len(got) != 0 {
		t.Fatalf("got %v, want no reasons", got)
	}
}

func TestMapReasonsEachCategory(t *testing.T) {
	cases := []struct {
		name string
		st   Status
		want []string
	}{
		{"cover open", Status{CoverOpen: true}, []string{ReasonCoverOpen}},
		{"label end", Status{LabelEnd: true}, []string{ReasonMediaEmpty}},
		{"ribbon end", Status{RibbonEnd: true}, []string{ReasonMediaEmpty}},
		{"label rw error", Status{LabelRWError: true}, []string{ReasonMediaJam}},
		{"not installed", Status{LabelNotInstalled: true}, []string{ReasonMediaNeeded}},
		{"head temp", Status{HeadTempHigh: true}, []string{ReasonOther}},
	}
	for _, c := range cases {
		if got := MapReasons(&c.st); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}
