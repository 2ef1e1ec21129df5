package twenty

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ripemerchant/repsync/internal/models"
)

func TestGetRepProgressionFiltersAndAuthenticates(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/rest/repProgressions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"repProgressions": []map[string]any{
					{"id": "rp-1", "workspaceMemberId": "member-1", "totalXp": 100},
					{"id": "rp-2", "workspaceMemberId": "member-2", "totalXp": 900},
				},
			},
		})
	}))
	defer server.Close()

	client := New(server.URL, "secret-key")
	got, err := client.GetRepProgression("member-2")
	if err != nil {
		t.Fatalf("GetRepProgression failed: %v", err)
	}

	if gotAuth != "Bearer secret-key" {
		t.Errorf("Authorization = %q, want Bearer secret-key", gotAuth)
	}
	if got == nil || got.ID != "rp-2" || got.TotalXP != 900 {
		t.Errorf("got = %+v, want rp-2", got)
	}

	missing, err := client.GetRepProgression("member-9")
	if err != nil {
		t.Fatalf("GetRepProgression failed: %v", err)
	}
	if missing != nil {
		t.Errorf("unmatched member returned %+v, want nil", missing)
	}
}

func TestEnvelopeFallback(t *testing.T) {
	// Older builds return the bare list without the data envelope.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "rp-1", "workspaceMemberId": "member-1", "totalXp": 50},
		})
	}))
	defer server.Close()

	client := New(server.URL, "key")
	list, err := client.ListRepProgressions()
	if err != nil {
		t.Fatalf("ListRepProgressions failed: %v", err)
	}
	if len(list) != 1 || list[0].TotalXP != 50 {
		t.Errorf("list = %+v", list)
	}
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(map[string]string{"message": "nope"})
		}))
		client := New(server.URL, "key")
		_, err := client.GetWorkspaceMembers()
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: err = %v, want %v", tt.status, err, tt.want)
		}
		server.Close()
	}
}

func TestNoAPIKeyShortCircuits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached server without API key")
	}))
	defer server.Close()

	client := New(server.URL, "")
	if _, err := client.GetWorkspaceMembers(); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestCurrentWorkspaceMember(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"workspaceMembers": []map[string]any{
					{"id": "m-1", "name": map[string]string{"firstName": "Jane", "lastName": "Doe"}},
					{"id": "m-2", "name": map[string]string{"firstName": "Sam", "lastName": "Park"}},
				},
			},
		})
	}))
	defer server.Close()

	client := New(server.URL, "key")
	member, err := client.CurrentWorkspaceMember("m-2")
	if err != nil {
		t.Fatalf("CurrentWorkspaceMember failed: %v", err)
	}
	if member == nil || member.DisplayName() != "Sam Park" {
		t.Errorf("member = %+v, want Sam Park", member)
	}

	// Empty id only resolves in a single-member workspace.
	if member, _ := client.CurrentWorkspaceMember(""); member != nil {
		t.Errorf("empty id resolved %+v in multi-member workspace", member)
	}
}

func TestCreateNotePostsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/notes" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var note Note
		json.NewDecoder(r.Body).Decode(&note)
		if note.Title != "Call - CONTACT | 1:30 | Jane" {
			t.Errorf("title = %q", note.Title)
		}
		note.ID = "n-1"
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"createNote": note},
		})
	}))
	defer server.Close()

	client := New(server.URL, "key")
	created, err := client.CreateNote("Call - CONTACT | 1:30 | Jane", "", "person-1")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if created.ID != "n-1" {
		t.Errorf("created = %+v", created)
	}
}

func TestUpdateRepProgressionPatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		if r.URL.Path != "/rest/repProgressions/rp-1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var p RepProgression
		json.NewDecoder(r.Body).Decode(&p)
		p.ID = "rp-1"
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"updateRepProgression": p},
		})
	}))
	defer server.Close()

	client := New(server.URL, "key")
	updated, err := client.UpdateRepProgression("rp-1", &RepProgression{TotalXP: 800})
	if err != nil {
		t.Fatalf("UpdateRepProgression failed: %v", err)
	}
	if updated.ID != "rp-1" || updated.TotalXP != 800 {
		t.Errorf("updated = %+v", updated)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	local := &models.Progression{
		TotalXP:          1600,
		Level:            17,
		ClosedDeals:      3,
		StreakDays:       5,
		Badges:           []string{"first_call"},
		CompletedModules: []string{"module_0", "module_1"},
		DefeatedBosses:   []string{"gatekeeper"},
		Efficiency:       &models.EfficiencyMetrics{CallToApptRate: 0.3},
	}

	wire := FromLocal(local, "member-1", "Jane Doe")
	if wire.Name != "Jane Doe" || wire.WorkspaceMemberID != "member-1" {
		t.Errorf("identity = %s/%s", wire.Name, wire.WorkspaceMemberID)
	}
	// Rank is derived from XP on encode, not copied.
	if wire.CurrentRank != "E-3" {
		t.Errorf("CurrentRank = %s, want E-3", wire.CurrentRank)
	}
	if wire.CompletedModules != `["module_0","module_1"]` {
		t.Errorf("CompletedModules = %s", wire.CompletedModules)
	}

	snap := ToSnapshot(wire)
	if snap.TotalXP != 1600 || snap.Level != 17 {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(snap.CompletedModules) != 2 || len(snap.DefeatedBosses) != 1 {
		t.Errorf("sets = %v / %v", snap.CompletedModules, snap.DefeatedBosses)
	}
}

func TestDecodeStringsTolerant(t *testing.T) {
	if got := DecodeStrings(""); len(got) != 0 {
		t.Errorf("empty = %v", got)
	}
	if got := DecodeStrings("not json"); len(got) != 0 {
		t.Errorf("malformed = %v", got)
	}
	if got := DecodeStrings("null"); got == nil || len(got) != 0 {
		t.Errorf("null = %v, want empty non-nil", got)
	}
	if got := DecodeStrings(`["a","b"]`); len(got) != 2 {
		t.Errorf("valid = %v", got)
	}
}
