package models

import (
	"strings"
	"time"
)

// DateLayout is the canonical form a birthday takes everywhere: storage,
// form population, and form submission. A pure date, no time component.
const DateLayout = "2006-01-02"

const (
	longDateLayout  = "January 2, 2006"
	shortDateLayout = "Jan 2"
)

// Friend is a row in the friends table, exactly as persisted. Birthday is
// kept in canonical YYYY-MM-DD form so lexical and chronological ordering
// coincide.
type Friend struct {
	ID           int64
	FirstName    string
	LastName     string
	EmailAddress string
	Birthday     string
}

// FriendDetail is a Friend plus the derived, render-only fields. The
// derived fields are never written back to storage.
type FriendDetail struct {
	Friend
	FullName          string
	BirthdayFormatted string
	BirthdayShort     string
}

// FriendForm carries the four submitted form fields. The zero value is a
// blank form: every field defaults to the empty string, so a create form
// or a missing submission key never renders a null-ish value.
type FriendForm struct {
	FirstName    string `validate:"required,min=2,max=50"`
	LastName     string `validate:"required,min=2,max=50"`
	EmailAddress string `validate:"required,email,max=100"`
	Birthday     string `validate:"required,datetime=2006-01-02"`
}

// Display derives the render-only fields from a raw record. A birthday
// that is present but unparseable degrades to sentinel text instead of
// failing the read.
func Display(f Friend) FriendDetail {
	d := FriendDetail{Friend: f}
	d.FullName = strings.TrimSpace(f.FirstName + " " + f.LastName)

	if f.Birthday == "" {
		d.BirthdayFormatted = "Not specified"
		d.BirthdayShort = "N/A"
		return d
	}

	t, err := time.Parse(DateLayout, f.Birthday)
	if err != nil {
		d.BirthdayFormatted = "Invalid Date"
		d.BirthdayShort = "N/A"
		return d
	}

	d.BirthdayFormatted = t.Format(longDateLayout)
	d.BirthdayShort = t.Format(shortDateLayout)
	return d
}

// DisplayAll maps a fetched page of raw records to display records,
// preserving order.
func DisplayAll(fs []Friend) []FriendDetail {
	ds := make([]FriendDetail, 0, len(fs))
	for _, f := range fs {
		ds = append(ds, Display(f))
	}
	return ds
}

// Record extracts the storable fields from a submitted form. No
// transformation happens here: the date arrives already in canonical form
// from the form's date input.
func (f FriendForm) Record() Friend {
	return Friend{
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		EmailAddress: f.EmailAddress,
		Birthday:     f.Birthday,
	}
}

// FormFromFriend populates a form with a stored record's raw fields, used
// when an edit form is opened by plain navigation.
func FormFromFriend(f Friend) FriendForm {
	return FriendForm{
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		EmailAddress: f.EmailAddress,
		Birthday:     f.Birthday,
	}
}
