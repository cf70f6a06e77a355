package stoplist

import (
	"reflect"
	"sync"
	"testing"
)

func TestManagerBasic(t *testing.T) {
	mgr := NewManager([]string{"する", "ある", ""})

	if !mgr.IsStop("する") {
		t.Error("'する' should be stopped")
	}
	if mgr.IsStop("猫") {
		t.Error("'猫' should not be stopped")
	}
	if mgr.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", mgr.Len())
	}

	r, ok := mgr.Reason("ある")
	if !ok || !r.Configured {
		t.Errorf("Expected configured reason, got %+v (found=%v)", r, ok)
	}
}

func TestManagerAddRemove(t *testing.T) {
	mgr := NewManager([]string{"する"})

	mgr.Add("こと", Reason{HighDF: true, DFPercent: 91})
	if !mgr.IsStop("こと") {
		t.Error("'こと' should be stopped after adding")
	}

	mgr.Remove("こと")
	if mgr.IsStop("こと") {
		t.Error("'こと' should not be stopped after removing")
	}
}

func TestManagerAllSorted(t *testing.T) {
	mgr := NewManager([]string{"れる", "いる", "する"})

	got := mgr.All()
	want := []string{"いる", "する", "れる"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestManagerConcurrent(t *testing.T) {
	mgr := NewManager(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mgr.Add("する", Reason{})
				mgr.IsStop("する")
				mgr.All()
			}
		}()
	}
	wg.Wait()

	if !mgr.IsStop("する") {
		t.Error("'する' should be stopped")
	}
}

func TestSuggestCandidates(t *testing.T) {
	mgr := NewManager([]string{"いる"})

	stats := []Stats{
		{Base: "いる", DF: 95, DFPercent: 95, Functional: true},
		{Base: "する", DF: 90, DFPercent: 90},
		{Base: "だ", DF: 50, DFPercent: 50, Functional: true},
		{Base: "猫", DF: 30, DFPercent: 30},
		{Base: "こと", DF: 45, DFPercent: 45},
	}

	got := mgr.SuggestCandidates(stats, 100, DefaultThresholds())
	if len(got) != 2 {
		t.Fatalf("Expected 2 candidates, got %d: %+v", len(got), got)
	}

	// functional words get boosted: (0.5+1)/2 = 0.75 < 0.9
	if got[0].Base != "する" || got[1].Base != "だ" {
		t.Errorf("Unexpected order: %+v", got)
	}
	if !got[0].Reason.HighDF || got[0].Reason.Functional {
		t.Errorf("Unexpected reason for する: %+v", got[0].Reason)
	}
	if got[1].Reason.HighDF || !got[1].Reason.Functional {
		t.Errorf("Unexpected reason for だ: %+v", got[1].Reason)
	}
}

func TestSuggestCandidatesSmallCorpus(t *testing.T) {
	mgr := NewManager(nil)
	stats := []Stats{{Base: "する", DF: 3, DFPercent: 100}}

	if got := mgr.SuggestCandidates(stats, 3, DefaultThresholds()); len(got) != 0 {
		t.Errorf("Expected no candidates below MinDocs, got %+v", got)
	}
}
