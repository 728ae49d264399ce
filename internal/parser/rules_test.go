package parser

import (
	"reflect"
	"testing"
)

func TestMatchTitle(t *testing.T) {
	cases := []struct {
		line  string
		want  string
		match bool
	}{
		{"# CBOR Reader & Writer", "CBOR Reader & Writer", true},
		{"# Closed Title #", "Closed Title", true},
		{"#NoSpace", "NoSpace", true},
		{"#   Padded Title   ", "Padded Title", true},
		{"#", "", false},
		{"#   ", "", false},
		{"Plain prose line", "", false},
		{"- # not a heading", "", false},
	}
	for _, tc := range cases {
		got, ok := MatchTitle(tc.line)
		if ok != tc.match {
			t.Errorf("MatchTitle(%q): expected match=%v, got %v", tc.line, tc.match, ok)
			continue
		}
		if got != tc.want {
			t.Errorf("MatchTitle(%q): expected %q, got %q", tc.line, tc.want, got)
		}
	}
}

func TestIsSubheading(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"## Background", true},
		{"### Deeper", true},
		{"##", true},
		{"# Top level", false},
		{"prose", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsSubheading(tc.line); got != tc.want {
			t.Errorf("IsSubheading(%q): expected %v, got %v", tc.line, tc.want, got)
		}
	}
}

func TestOwnerNames(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"**Owner** Immo Landwerth", []string{"Immo Landwerth"}},
		{"**Owners** Immo Landwerth, Jan Kotas", []string{"Immo Landwerth", "Jan Kotas"}},
		{"**Owners** Alpha | Beta", []string{"Alpha", "Beta"}},
		{"**owner** lowercase marker", []string{"lowercase marker"}},
		{"**Libraries Owner** Eirik Tsarpalis", []string{"Eirik Tsarpalis"}},
		{"**Owner** [Eirik Tsarpalis](https://github.com/eiriktsarpalis)", []string{"Eirik Tsarpalis"}},
		{"**Owners**: [PM](a), [Dev](b)", []string{"PM", "Dev"}},
		{"  **Owners** Indented", []string{"Indented"}},
		{"**Owners** ,, Tail", []string{"Tail"}},
		{"**Owners**", nil},
		{"**Author** Not An Owner", nil},
		{"Somewhere **owner** mid-sentence", nil},
		{"plain line", nil},
	}
	for _, tc := range cases {
		got := OwnerNames(tc.line)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("OwnerNames(%q): expected %v, got %v", tc.line, tc.want, got)
		}
	}
}

func TestIsDraftMarker(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"**DRAFT**", true},
		{"**draft**", true},
		{"   **Draft**   ", true},
		{"**DRAFTY**", false},
		{"DRAFT", false},
		{"This design is a **DRAFT** still", false},
	}
	for _, tc := range cases {
		if got := IsDraftMarker(tc.line); got != tc.want {
			t.Errorf("IsDraftMarker(%q): expected %v, got %v", tc.line, tc.want, got)
		}
	}
}
