package engine

import (
	"reflect"
	"testing"
)

func TestInitDefaults(t *testing.T) {
	Init(Config{})
	if Cfg.LinkedInBaseURL != "https://www.linkedin.com" {
		t.Errorf("LinkedInBaseURL = %q, want default", Cfg.LinkedInBaseURL)
	}
	if !reflect.DeepEqual(Cfg.Subpages, DefaultSubpages) {
		t.Errorf("Subpages = %v, want %v", Cfg.Subpages, DefaultSubpages)
	}
	if Cfg.FetchEnabled() {
		t.Error("FetchEnabled() = true without a browser client")
	}
}

func TestInitDropsEmptySubpages(t *testing.T) {
	Init(Config{Subpages: []string{"", "details/experience/", ""}})
	if want := []string{"details/experience/"}; !reflect.DeepEqual(Cfg.Subpages, want) {
		t.Errorf("Subpages = %v, want %v", Cfg.Subpages, want)
	}

	Init(Config{Subpages: []string{""}})
	if !reflect.DeepEqual(Cfg.Subpages, DefaultSubpages) {
		t.Errorf("Subpages = %v, want defaults", Cfg.Subpages)
	}
}
