package models

import "testing"

func TestCustomerMatchesSearch(t *testing.T) {
	c := Customer{Name: "Budi Santoso", Phone: "081234567890"}

	if !c.MatchesSearch("") {
		t.Error("Empty query should match everything")
	}
	if !c.MatchesSearch("budi") {
		t.Error("Name match should be case-insensitive")
	}
	if !c.MatchesSearch("345") {
		t.Error("Phone substring should match")
	}
	if c.MatchesSearch("ani") {
		t.Error("Unrelated query should not match")
	}
}

func TestFilterCustomersByPhone(t *testing.T) {
	customers := []Customer{
		{Name: "Budi", Phone: "081234"},
		{Name: "Ani", Phone: "085678"},
		{Name: "Citra", Phone: "081299"},
	}

	got := FilterCustomersByPhone(customers, "0812")
	if len(got) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(got))
	}
	if got[0].Name != "Budi" || got[1].Name != "Citra" {
		t.Errorf("Unexpected matches: %v", got)
	}

	if got := FilterCustomersByPhone(customers, ""); len(got) != 3 {
		t.Errorf("Empty prefix should return all customers, got %d", len(got))
	}
	if got := FilterCustomersByPhone(customers, "999"); len(got) != 0 {
		t.Errorf("Expected no matches, got %d", len(got))
	}
}
