package auth

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Role
		wantErr bool
	}{
		{"lowercase doctor", "doctor", RoleDoctor, false},
		{"uppercase doctor", "DOCTOR", RoleDoctor, false},
		{"mixed case", "Doctor", RoleDoctor, false},
		{"surrounding whitespace", "  doctor ", RoleDoctor, false},
		{"admin", "admin", RoleAdmin, false},
		{"administrator synonym", "administrator", RoleAdmin, false},
		{"Administrator mixed case", "Administrator", RoleAdmin, false},
		{"nurse", "nurse", RoleNurse, false},
		{"receptionist", "Receptionist", RoleReceptionist, false},
		{"lab technician underscore", "lab_technician", RoleLabTech, false},
		{"lab technician spaced", "Lab Technician", RoleLabTech, false},
		{"empty string", "", "", true},
		{"unknown role", "janitor", "", true},
		{"whitespace only", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRole_String(t *testing.T) {
	if RoleDoctor.String() != "doctor" {
		t.Errorf("expected doctor, got %s", RoleDoctor.String())
	}
	if RoleLabTech.String() != "lab_technician" {
		t.Errorf("expected lab_technician, got %s", RoleLabTech.String())
	}
}
