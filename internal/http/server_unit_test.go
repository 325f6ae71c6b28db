package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/medali150/university-platform-sub001/internal/db"
	"github.com/medali150/university-platform-sub001/internal/timetable"
)

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":  "abc",
		"bearer abc":  "abc",
		"Bearer  abc": "abc",
		"":            "",
		"abc":         "",
		"Basic abc":   "",
	}
	for header, expect := range cases {
		if got := bearerToken(header); got != expect {
			t.Fatalf("header %q: expected %q, got %q", header, expect, got)
		}
	}
}

func TestNormalizeSessionStatus(t *testing.T) {
	for _, status := range []string{"planned", "held", "cancelled", "makeup"} {
		if _, ok := normalizeSessionStatus(status); !ok {
			t.Fatalf("expected status %s to be valid", status)
		}
	}
	if _, ok := normalizeSessionStatus("unknown"); ok {
		t.Fatalf("expected invalid status to be rejected")
	}
}

func TestNormalizeRoomType(t *testing.T) {
	cases := map[string]db.RoomType{
		"lecture": db.RoomTypeLecture,
		"LAB":     db.RoomTypeLab,
		" amphi ": db.RoomTypeAmphi,
		"other":   db.RoomTypeOther,
		"":        db.RoomTypeOther,
	}
	for input, expect := range cases {
		got, ok := normalizeRoomType(input)
		if !ok {
			t.Fatalf("expected %q to be valid", input)
		}
		if got != expect {
			t.Fatalf("input %q: expected %s, got %s", input, expect, got)
		}
	}
	if _, ok := normalizeRoomType("closet"); ok {
		t.Fatalf("expected unknown room type to be rejected")
	}
}

// Slots within one day are expanded in slot-list order, so a later-listed
// slot can start earlier than the first. The window must still cover it.
func TestDraftWindow(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2025, 9, 8, hour, 0, 0, 0, time.UTC)
	}
	drafts := []timetable.Draft{
		{StartsAt: at(10), EndsAt: at(12)},
		{StartsAt: at(8), EndsAt: at(9)},
	}
	from, to := draftWindow(drafts)
	if !from.Equal(at(8)) {
		t.Fatalf("expected window start 08:00, got %v", from)
	}
	if !to.Equal(at(12)) {
		t.Fatalf("expected window end 12:00, got %v", to)
	}

	from, to = draftWindow(drafts[:1])
	if !from.Equal(at(10)) || !to.Equal(at(12)) {
		t.Fatalf("single draft window: got %v..%v", from, to)
	}
}

func TestMarkAbsentRequestAliases(t *testing.T) {
	var req markAbsentRequest
	if err := json.Unmarshal([]byte(`{"studentId":"s","schedule_id":"legacy","motif":"maladie"}`), &req); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if req.sessionID() != "legacy" {
		t.Fatalf("expected schedule_id alias, got %q", req.sessionID())
	}
	if req.reason() != "maladie" {
		t.Fatalf("expected motif alias, got %q", req.reason())
	}

	req = markAbsentRequest{}
	if err := json.Unmarshal([]byte(`{"scheduleId":"camel","reason":"retard","motif":"ignored"}`), &req); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if req.sessionID() != "camel" {
		t.Fatalf("expected scheduleId alias, got %q", req.sessionID())
	}
	if req.reason() != "retard" {
		t.Fatalf("canonical reason must win over motif, got %q", req.reason())
	}
}

func TestWriteDependencyDelete(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDependencyDelete(rec, []db.DependentCount{{Kind: "specialty", Count: 2}})
	if rec.Code != 409 {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var body struct {
		Error      string `json:"error"`
		Dependents []struct {
			Kind  string `json:"kind"`
			Count int64  `json:"count"`
		} `json:"dependents"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if body.Error != "has_dependents" {
		t.Fatalf("expected has_dependents, got %s", body.Error)
	}
	if len(body.Dependents) != 1 || body.Dependents[0].Kind != "specialty" || body.Dependents[0].Count != 2 {
		t.Fatalf("unexpected dependents: %+v", body.Dependents)
	}
}
