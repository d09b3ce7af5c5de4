package profile

import "encoding/json"

// Snapshot is the immutable result of one extraction run.
type Snapshot struct {
	URL             string
	BasicInfo       BasicInfo
	Contact         *ContactInfo
	Experiences     []Entry[Experience]
	Educations      []Entry[Education]
	Interests       []Entry[Interest]
	Accomplishments []Entry[Accomplishment]

	// Derived from Experiences[0] when it is a record.
	PrimaryEmployer string
	PrimaryTitle    string
}

// derivePrimary fills PrimaryEmployer and PrimaryTitle from the first experience only.
func (s *Snapshot) derivePrimary() {
	s.PrimaryEmployer, s.PrimaryTitle = "", ""
	if len(s.Experiences) == 0 || s.Experiences[0].Failed() {
		return
	}
	first := s.Experiences[0].Record
	s.PrimaryEmployer = first.Name
	s.PrimaryTitle = first.Title
}

// FaultCount is the number of faults across all lists.
func (s *Snapshot) FaultCount() int {
	return len(Faults(s.Experiences)) + len(Faults(s.Educations)) +
		len(Faults(s.Interests)) + len(Faults(s.Accomplishments))
}

type wireBasicInfo struct {
	BasicInfo
	Company  string `json:"company,omitempty"`
	JobTitle string `json:"job_title,omitempty"`
}

type wireSnapshot struct {
	BasicInfo       wireBasicInfo           `json:"basic_info"`
	ContactInfo     *ContactInfo            `json:"contact_info"`
	Experiences     []Entry[Experience]     `json:"experiences"`
	Educations      []Entry[Education]      `json:"educations"`
	Interests       []Entry[Interest]       `json:"interests"`
	Accomplishments []Entry[Accomplishment] `json:"accomplishments"`
}

// MarshalJSON writes the wire shape: basic_info, contact_info and the four lists.
// Lists are always arrays, contact_info is null when the overlay was absent.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireSnapshot{
		BasicInfo:       wireBasicInfo{BasicInfo: s.BasicInfo, Company: s.PrimaryEmployer, JobTitle: s.PrimaryTitle},
		ContactInfo:     s.Contact,
		Experiences:     nonNil(s.Experiences),
		Educations:      nonNil(s.Educations),
		Interests:       nonNil(s.Interests),
		Accomplishments: nonNil(s.Accomplishments),
	})
}

// UnmarshalJSON reads the wire shape back. Ordinals are restored from list position.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var w wireSnapshot
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Snapshot{
		BasicInfo:       w.BasicInfo.BasicInfo,
		Contact:         w.ContactInfo,
		Experiences:     renumber(w.Experiences, KindExperience),
		Educations:      renumber(w.Educations, KindEducation),
		Interests:       renumber(w.Interests, KindInterest),
		Accomplishments: renumber(w.Accomplishments, KindAccomplishment),
		PrimaryEmployer: w.BasicInfo.Company,
		PrimaryTitle:    w.BasicInfo.JobTitle,
	}
	return nil
}

func nonNil[T any](entries []Entry[T]) []Entry[T] {
	if entries == nil {
		return []Entry[T]{}
	}
	return entries
}

func renumber[T any](entries []Entry[T], kind Kind) []Entry[T] {
	for i := range entries {
		entries[i].Ordinal = i + 1
		if entries[i].Fault != nil {
			entries[i].Fault.Ordinal = i + 1
			entries[i].Fault.Kind = kind
		}
	}
	return nonNil(entries)
}
