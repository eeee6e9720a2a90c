package locale

import (
	"testing"

	"github.com/JonMunkholm/utiming/internal/core"
)

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tr
}

func TestNew(t *testing.T) {
	tr := newTranslator(t)
	for _, lang := range []string{"pt-BR", "en"} {
		if !tr.Supports(lang) {
			t.Errorf("Supports(%q) = false", lang)
		}
	}
	if tr.Supports("fr") {
		t.Error("Supports(fr) = true")
	}

	if _, err := New("fr"); err == nil {
		t.Error("New(fr) should fail without a French catalog")
	}
	if _, err := New("not a tag!"); err == nil {
		t.Error("New() with a bad tag should fail")
	}
}

func TestLocalizer_Lang(t *testing.T) {
	tr := newTranslator(t)
	tests := []struct {
		langs []string
		want  string
	}{
		{langs: nil, want: "pt-BR"},
		{langs: []string{"en"}, want: "en"},
		{langs: []string{"en-US,en;q=0.9,pt;q=0.5"}, want: "en"},
		{langs: []string{"fr"}, want: "pt-BR"},
		{langs: []string{"", "en"}, want: "en"},
	}
	for _, tt := range tests {
		if got := tr.Localizer(tt.langs...).Lang(); got != tt.want {
			t.Errorf("Localizer(%q).Lang() = %q, want %q", tt.langs, got, tt.want)
		}
	}
}

func TestLocalizer_T(t *testing.T) {
	tr := newTranslator(t)
	pt := tr.Localizer("pt-BR")
	en := tr.Localizer("en")

	if got := pt.T("index.empty"); got != "Nenhuma bateria disponível." {
		t.Errorf("pt T(index.empty) = %q", got)
	}
	if got := en.T("index.empty"); got != "No races available." {
		t.Errorf("en T(index.empty) = %q", got)
	}
	if got := pt.T("no.such.key"); got != "no.such.key" {
		t.Errorf("T(missing) = %q, want the id", got)
	}
	if got := pt.Tf("race.title", map[string]any{"Date": "15 de março de 2024"}); got != "Bateria de 15 de março de 2024" {
		t.Errorf("Tf(race.title) = %q", got)
	}
}

func TestLocalizer_Plural(t *testing.T) {
	tr := newTranslator(t)
	pt := tr.Localizer("pt-BR")
	en := tr.Localizer("en")

	tests := []struct {
		l    *Localizer
		n    int
		want string
	}{
		{pt, 1, "1 piloto"},
		{pt, 12, "12 pilotos"},
		{en, 1, "1 driver"},
		{en, 2, "2 drivers"},
	}
	for _, tt := range tests {
		if got := tt.l.Plural("race.drivers", tt.n); got != tt.want {
			t.Errorf("%s Plural(race.drivers, %d) = %q, want %q", tt.l.Lang(), tt.n, got, tt.want)
		}
	}
}

func TestLocalizer_LongDate(t *testing.T) {
	tr := newTranslator(t)
	pt := tr.Localizer("pt-BR")
	en := tr.Localizer("en")

	tests := []struct {
		name string
		l    *Localizer
		in   string
		want string
	}{
		{"pt march", pt, "20240315", "15 de março de 2024"},
		{"pt padded day", pt, "20240105", "05 de janeiro de 2024"},
		{"pt december", pt, "20231231", "31 de dezembro de 2023"},
		{"en", en, "20240305", "March 5, 2024"},
		{"dashed input", pt, "2024-03-15", "2024-03-15"},
		{"impossible day", pt, "20240230", "20240230"},
		{"empty", pt, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.l.LongDate(tt.in); got != tt.want {
				t.Errorf("LongDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLocalizer_Column(t *testing.T) {
	tr := newTranslator(t)
	name, _ := core.ColumnByID(core.Columns(), core.ColName)

	if got := tr.Localizer("pt-BR").Column(name); got != "Nome" {
		t.Errorf("pt Column(name) = %q", got)
	}
	if got := tr.Localizer("en").Column(name); got != "Name" {
		t.Errorf("en Column(name) = %q", got)
	}

	custom := core.Column{ID: "penalty", Label: "Punição", LabelID: "column.penalty"}
	for _, lang := range []string{"pt-BR", "en"} {
		if got := tr.Localizer(lang).Column(custom); got != "Punição" {
			t.Errorf("%s Column(custom) = %q, want the label", lang, got)
		}
	}
	if got := tr.Localizer("en").Column(core.Column{Label: "Raw"}); got != "Raw" {
		t.Errorf("Column without LabelID = %q", got)
	}
}

func TestLocalizer_Error(t *testing.T) {
	tr := newTranslator(t)
	pt := tr.Localizer("pt-BR")

	got := pt.Error(core.MapError(core.ErrNoRaces))
	if got.Code != "IDX002" || got.Message != "Nenhuma bateria disponível" {
		t.Errorf("Error(ErrNoRaces) = %+v", got)
	}

	en := tr.Localizer("en").Error(core.MapError(core.ErrNoRaces))
	if en.Message != "No races available" || en.Action != "Check back after the next race" {
		t.Errorf("en Error(ErrNoRaces) = %+v", en)
	}

	unknown := core.UserMessage{Message: "Odd", Action: "Shrug", Code: "ZZZ999"}
	if got := pt.Error(unknown); got != unknown {
		t.Errorf("Error(unknown code) = %+v, want unchanged", got)
	}
	if got := pt.Error(core.UserMessage{}); got != (core.UserMessage{}) {
		t.Errorf("Error(empty) = %+v", got)
	}
}
