package models

// JWTClaims represents the structure of the JWT token claims issued by the
// identity provider. The gateway validates signatures; the API only reads
// the claims it needs.
type JWTClaims struct {
	JTI          string   `json:"jti"`
	Exp          int64    `json:"exp"`
	IAT          int64    `json:"iat"`
	ISS          string   `json:"iss"`
	AUD          []string `json:"aud"`
	SUB          string   `json:"sub"`
	SessionState string   `json:"session_state"`
	RealmAccess  struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	Scope             string `json:"scope"`
	EmailVerified     bool   `json:"email_verified"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	GivenName         string `json:"given_name"`
	FamilyName        string `json:"family_name"`
	Email             string `json:"email"`
}
