package core

import (
	"fmt"
	"iter"
	"strings"
	"time"
)

// Vendor is a salesperson record. It is a plain value: two vendors with the
// same fields are equal under == and collapse into one inside a RecordSet.
type Vendor struct {
	ID        int
	Name      string
	BirthDate Date
	Region    string
}

// NewVendor validates the fields and returns a Vendor.
// An id of zero is allowed; uniqueness of ids is not checked.
func NewVendor(id int, name string, birthDate Date, region string) (Vendor, error) {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(region) == "" {
		missing = append(missing, "region")
	}
	if !birthDate.IsValid() {
		missing = append(missing, "birth date")
	}
	if len(missing) > 0 {
		return Vendor{}, fmt.Errorf("%w: required field empty or invalid: %s",
			ErrInvalidVendor, strings.Join(missing, ", "))
	}

	return Vendor{
		ID:        id,
		Name:      name,
		BirthDate: birthDate,
		Region:    region,
	}, nil
}

// AgeAt returns the number of whole years between the vendor's birth date
// and the calendar date of t.
func (v Vendor) AgeAt(t time.Time) int {
	today := DateOf(t)
	age := today.Year - v.BirthDate.Year
	if today.Month < v.BirthDate.Month ||
		(today.Month == v.BirthDate.Month && today.Day < v.BirthDate.Day) {
		age--
	}
	return age
}

// Age returns the vendor's age today. It is recomputed on every call.
func (v Vendor) Age() int {
	return v.AgeAt(time.Now())
}

// RecordSet is an ordered, duplicate-free collection of vendors.
// Iteration follows first-seen order. A RecordSet has no exported
// mutators, so a set handed out by the store cannot be changed by callers.
type RecordSet struct {
	items []Vendor
}

// NewRecordSet builds a set from vendors, keeping the first occurrence
// of each distinct vendor.
func NewRecordSet(vendors ...Vendor) RecordSet {
	var b recordSetBuilder
	for _, v := range vendors {
		b.add(v)
	}
	return b.build()
}

// Len returns the number of vendors in the set.
func (s RecordSet) Len() int {
	return len(s.items)
}

// Vendors returns a copy of the vendors in order.
func (s RecordSet) Vendors() []Vendor {
	out := make([]Vendor, len(s.items))
	copy(out, s.items)
	return out
}

// All iterates over the vendors in order.
func (s RecordSet) All() iter.Seq[Vendor] {
	return func(yield func(Vendor) bool) {
		for _, v := range s.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Contains reports whether v is in the set.
func (s RecordSet) Contains(v Vendor) bool {
	for _, item := range s.items {
		if item == v {
			return true
		}
	}
	return false
}

// recordSetBuilder accumulates vendors, dropping exact duplicates.
type recordSetBuilder struct {
	seen       map[Vendor]struct{}
	items      []Vendor
	duplicates int
}

func (b *recordSetBuilder) add(v Vendor) bool {
	if b.seen == nil {
		b.seen = make(map[Vendor]struct{})
	}
	if _, ok := b.seen[v]; ok {
		b.duplicates++
		return false
	}
	b.seen[v] = struct{}{}
	b.items = append(b.items, v)
	return true
}

func (b *recordSetBuilder) build() RecordSet {
	return RecordSet{items: b.items}
}
