package announcement_test

import (
	"testing"

	"camphq/internal/domain/announcement"
)

// TestAnnouncement_Validate tests validation of Announcement.
func TestAnnouncement_Validate(t *testing.T) {
	valid := announcement.Announcement{
		ID:     "a-1",
		CampID: "camp-1",
		Type:   announcement.TypeGeneral,
		Status: announcement.StatusPublished,
		Title:  "Bring sunscreen",
		Body:   "It will be **hot** this week.",
	}

	tests := []struct {
		name    string
		mutate  func(*announcement.Announcement)
		wantErr bool
	}{
		{name: "valid general", mutate: func(a *announcement.Announcement) {}, wantErr: false},
		{name: "valid schedule draft", mutate: func(a *announcement.Announcement) { a.Type = announcement.TypeSchedule; a.Status = announcement.StatusDraft }, wantErr: false},
		{name: "empty camp", mutate: func(a *announcement.Announcement) { a.CampID = "" }, wantErr: true},
		{name: "empty title", mutate: func(a *announcement.Announcement) { a.Title = " " }, wantErr: true},
		{name: "empty body", mutate: func(a *announcement.Announcement) { a.Body = "" }, wantErr: true},
		{name: "unknown type", mutate: func(a *announcement.Announcement) { a.Type = "urgent" }, wantErr: true},
		{name: "unknown status", mutate: func(a *announcement.Announcement) { a.Status = "queued" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			err := a.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Announcement.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
