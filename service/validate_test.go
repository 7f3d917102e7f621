package service

import "testing"

func TestValidateLogin(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{name: "valid", email: " ada@school.edu ", password: "s3cret!pw", want: ""},
		{name: "missing at", email: "ada.school.edu", password: "s3cret!pw", want: msgInvalidEmail},
		{name: "missing tld", email: "ada@school", password: "s3cret!pw", want: msgInvalidEmail},
		{name: "space in email", email: "ada lovelace@school.edu", password: "s3cret!pw", want: msgInvalidEmail},
		{name: "bad email wins over bad password", email: "nope", password: "x", want: msgInvalidEmail},
		{name: "too short", email: "ada@school.edu", password: "s3c!", want: msgInvalidPassword},
		{name: "no digit", email: "ada@school.edu", password: "secret!pw", want: msgInvalidPassword},
		{name: "no special", email: "ada@school.edu", password: "s3cretpw1", want: msgInvalidPassword},
		{name: "underscore is a word char", email: "ada@school.edu", password: "s3cret_pw", want: msgInvalidPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input, err := ValidateLogin(tc.email, tc.password)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				if input.Email != "ada@school.edu" {
					t.Fatalf("expected trimmed email, got %q", input.Email)
				}
				return
			}
			if err == nil || err.Error() != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}
