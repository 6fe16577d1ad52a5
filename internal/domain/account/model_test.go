package account_test

import (
	"testing"

	"camphq/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		acct    account.Account
		wantErr bool
	}{
		{name: "valid admin", acct: account.Account{ID: "1", OrganizationID: "org-1", Email: "admin@example.com", Role: account.RoleAdmin}, wantErr: false},
		{name: "valid staff", acct: account.Account{ID: "2", OrganizationID: "org-1", Email: "coach@example.com", Role: account.RoleStaff}, wantErr: false},
		{name: "empty email", acct: account.Account{ID: "3", OrganizationID: "org-1", Email: "", Role: account.RoleAdmin}, wantErr: true},
		{name: "email without at", acct: account.Account{ID: "4", OrganizationID: "org-1", Email: "nope", Role: account.RoleAdmin}, wantErr: true},
		{name: "empty organization", acct: account.Account{ID: "5", OrganizationID: "", Email: "a@b.c", Role: account.RoleAdmin}, wantErr: true},
		{name: "unknown role", acct: account.Account{ID: "6", OrganizationID: "org-1", Email: "a@b.c", Role: "owner"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.acct.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Account.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_PasswordRoundTrip tests hashing and verification.
func TestAccount_PasswordRoundTrip(t *testing.T) {
	a := account.Account{ID: "1", OrganizationID: "org-1", Email: "admin@example.com", Role: account.RoleAdmin}

	if err := a.SetPassword("short"); err != account.ErrPasswordTooShort {
		t.Errorf("SetPassword(short) error = %v, want ErrPasswordTooShort", err)
	}
	if err := a.SetPassword("a sufficiently long passphrase"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if err := a.CheckPassword("a sufficiently long passphrase"); err != nil {
		t.Errorf("CheckPassword(correct) error = %v", err)
	}
	if err := a.CheckPassword("wrong passphrase entirely"); err != account.ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) error = %v, want ErrWrongPassword", err)
	}
}

// TestAccount_Lockout tests the failed-login lockout counter.
func TestAccount_Lockout(t *testing.T) {
	a := account.Account{ID: "1", OrganizationID: "org-1", Email: "admin@example.com", Role: account.RoleAdmin}
	for i := 0; i < 4; i++ {
		a.RecordFailedLogin()
	}
	if a.IsLocked() {
		t.Error("locked after 4 failures, want unlocked")
	}
	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Error("not locked after 5 failures")
	}
	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Error("ResetFailedLogins did not clear lockout")
	}
}
