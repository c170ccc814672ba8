package stats

import (
	"sort"
	"time"

	"medidocs/internal/model"
)

// Package stats computes point-in-time and time-bucketed statistics over
// the document corpus. Every function is a pure function of its inputs:
// the caller supplies the document/actor slices, the reference instant,
// and the calendar time zone. Nothing here reads the wall clock or talks
// to storage. The result describes exactly the snapshot it was handed.

// UncategorizedLabel buckets documents without a category reference.
const UncategorizedLabel = "Uncategorized"

// monthLabelFormat disambiguates months across year boundaries.
const monthLabelFormat = "Jan 2006"

// Snapshot is the basic corpus overview served to administrators.
type Snapshot struct {
	TotalPatients     int   `json:"total_patients"`
	TotalDocuments    int   `json:"total_documents"`
	TotalStorageBytes int64 `json:"total_storage_bytes"`
	UploadsToday      int   `json:"documents_uploaded_today"`
	UploadsThisMonth  int   `json:"documents_uploaded_this_month"`
	ActivePatients    int   `json:"active_patients"`
	InactivePatients  int   `json:"inactive_patients"`
}

// CategoryCount is one histogram bucket.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MonthCount is one bucket of a monthly trend, labelled like "Mar 2026".
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Extended composes the basic snapshot with distributions and trends for
// the admin dashboard.
type Extended struct {
	Snapshot
	BannedPatients         int             `json:"banned_patients"`
	PatientsWithoutProfile int             `json:"patients_without_profile"`
	MonthlyUploads         []MonthCount    `json:"monthly_uploads"`
	PatientRegistrations   []MonthCount    `json:"patient_registrations"`
	CategoryHistogram      []CategoryCount `json:"category_histogram"`
}

// Basic computes the corpus overview at the supplied instant. Calendar
// boundaries ("today", "this month") are evaluated in loc. An empty
// document set yields all zeros.
func Basic(docs []model.Document, patients []model.Actor, now time.Time, loc *time.Location) Snapshot {
	if loc == nil {
		loc = time.UTC
	}
	ref := now.In(loc)
	day := ref.Format("2006-01-02")
	month := ref.Format("2006-01")

	s := Snapshot{
		TotalPatients:  len(patients),
		TotalDocuments: len(docs),
	}
	for _, p := range patients {
		if p.Active {
			s.ActivePatients++
		} else {
			s.InactivePatients++
		}
	}
	for _, d := range docs {
		s.TotalStorageBytes += d.FileSize
		up := d.UploadDate.In(loc)
		if up.Format("2006-01-02") == day {
			s.UploadsToday++
		}
		if up.Format("2006-01") == month {
			s.UploadsThisMonth++
		}
	}
	return s
}

// CategoryHistogram groups documents by category name; documents without a
// category fall into the Uncategorized bucket. Buckets are sorted by count
// descending, ties broken alphabetically, so results are reproducible.
func CategoryHistogram(docs []model.Document) []CategoryCount {
	counts := map[string]int{}
	for _, d := range docs {
		name := d.CategoryName
		if d.CategoryID == nil || name == "" {
			name = UncategorizedLabel
		}
		counts[name]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// MonthlyTrend buckets document uploads by calendar month, oldest first,
// covering the reference month and the prior monthsBack-1 months. Months
// with no uploads appear with a zero count.
func MonthlyTrend(docs []model.Document, monthsBack int, ref time.Time, loc *time.Location) []MonthCount {
	return monthlyBuckets(monthsBack, ref, loc, len(docs), func(i int) time.Time {
		return docs[i].UploadDate
	})
}

// RegistrationTrend buckets patient account creations by calendar month,
// same shape as MonthlyTrend.
func RegistrationTrend(patients []model.Actor, monthsBack int, ref time.Time, loc *time.Location) []MonthCount {
	return monthlyBuckets(monthsBack, ref, loc, len(patients), func(i int) time.Time {
		return patients[i].CreatedAt
	})
}

func monthlyBuckets(monthsBack int, ref time.Time, loc *time.Location, n int, at func(int) time.Time) []MonthCount {
	if monthsBack <= 0 {
		return []MonthCount{}
	}
	if loc == nil {
		loc = time.UTC
	}
	r := ref.In(loc)

	// Normalize to the first of the month so AddDate arithmetic cannot
	// skip short months.
	first := time.Date(r.Year(), r.Month(), 1, 0, 0, 0, 0, loc)

	index := make(map[string]int, monthsBack)
	out := make([]MonthCount, monthsBack)
	for i := 0; i < monthsBack; i++ {
		m := first.AddDate(0, i-(monthsBack-1), 0)
		key := m.Format("2006-01")
		index[key] = i
		out[i] = MonthCount{Month: m.Format(monthLabelFormat)}
	}

	for i := 0; i < n; i++ {
		key := at(i).In(loc).Format("2006-01")
		if pos, ok := index[key]; ok {
			out[pos].Count++
		}
	}
	return out
}

// ComputeExtended composes the basic snapshot with category and monthly
// breakdowns plus the population-scoped counts supplied by the account
// collaborator's flags.
func ComputeExtended(docs []model.Document, patients []model.Actor, monthsBack int, now time.Time, loc *time.Location) Extended {
	ext := Extended{
		Snapshot:             Basic(docs, patients, now, loc),
		MonthlyUploads:       MonthlyTrend(docs, monthsBack, now, loc),
		PatientRegistrations: RegistrationTrend(patients, monthsBack, now, loc),
		CategoryHistogram:    CategoryHistogram(docs),
	}
	for _, p := range patients {
		if p.Banned {
			ext.BannedPatients++
		}
		if !p.HasProfile {
			ext.PatientsWithoutProfile++
		}
	}
	return ext
}
