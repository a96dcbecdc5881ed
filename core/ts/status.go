// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

// Status is the lifecycle marker of a translation, stored in the type attribute
// of the <translation> element.
type Status int

const (
	// Finished translations have no type attribute.
	Finished Status = iota
	Unfinished
	Vanished
	Obsolete
)

var statusNames = [...]string{
	Finished:   "finished",
	Unfinished: "unfinished",
	Vanished:   "vanished",
	Obsolete:   "obsolete",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}

	return statusNames[s]
}

// attr returns the value written to the type attribute, or "" for Finished.
func (s Status) attr() string {
	if s == Finished {
		return ""
	}

	return s.String()
}

// parseStatus maps a type attribute to a Status.
// Unknown values map to Finished and report ok == false.
func parseStatus(attr string) (Status, bool) {
	switch attr {
	case "":
		return Finished, true
	case "unfinished":
		return Unfinished, true
	case "vanished":
		return Vanished, true
	case "obsolete":
		return Obsolete, true
	}

	return Finished, false
}

// ParseStatus is the exported form of the type attribute mapping, used by
// command-line filters. It accepts "finished" as an explicit spelling.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "":
		return Finished, false
	case "finished":
		return Finished, true
	}

	return parseStatus(s)
}

// Current reports whether a message with this status is still present in the
// application sources.
func (s Status) Current() bool {
	return s == Finished || s == Unfinished
}
