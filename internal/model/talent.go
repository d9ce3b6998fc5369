package model

// TalentProfile is the subset of a talent's profile the reminder pass needs:
// the profile-to-account link plus the matching attributes.
type TalentProfile struct {
	ID       string
	UserID   *string
	Location *string
	Act      *string
}
