package organization_test

import (
	"testing"

	"camphq/internal/domain/organization"
)

// TestOrganization_Validate tests validation of Organization.
func TestOrganization_Validate(t *testing.T) {
	tests := []struct {
		name    string
		org     organization.Organization
		wantErr bool
	}{
		{name: "valid", org: organization.Organization{ID: "1", Name: "Riverside Sports Club", ContactEmail: "info@riverside.example"}, wantErr: false},
		{name: "empty name", org: organization.Organization{ID: "2", Name: " ", ContactEmail: "info@riverside.example"}, wantErr: true},
		{name: "bad email", org: organization.Organization{ID: "3", Name: "Riverside", ContactEmail: "not-an-email"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.org.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Organization.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
