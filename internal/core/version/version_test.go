package version

import "testing"

func TestInfo_Defaults(t *testing.T) {
	got := Info("shelfwatch-api")
	if got.Service != "shelfwatch-api" || got.Version != "dev" || got.Date != "unknown" {
		t.Fatalf("Info = %+v", got)
	}
	if got.Commit == "" {
		t.Fatal("commit should never be empty")
	}
}
