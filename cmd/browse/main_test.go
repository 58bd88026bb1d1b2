package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRunMemoryFallback(t *testing.T) {
	t.Setenv("SWEETSHOP_CATALOG_SOURCE", "")
	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{"-category", "Chocolates", "-search", "ladoo"}, &out, &errOut)
	if err != nil {
		t.Fatalf("run: %v (%s)", err, errOut.String())
	}
	text := out.String()
	if !strings.Contains(text, "* Chocolates (2)") {
		t.Fatalf("expected selected category marker, got:\n%s", text)
	}
	if !strings.Contains(text, "Motichoor Ladoo") || strings.Contains(text, "Hazelnut") {
		t.Fatalf("expected fallback to the ladoo only, got:\n%s", text)
	}
	if !strings.Contains(text, "550.00") || !strings.Contains(text, "15%") {
		t.Fatalf("expected price and discount columns, got:\n%s", text)
	}
}

func TestRunPriceHigh(t *testing.T) {
	t.Setenv("SWEETSHOP_CATALOG_SOURCE", "")
	var out, errOut bytes.Buffer
	if err := run(context.Background(), []string{"-category", "Gummies", "-sort", "price-high"}, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	if strings.Index(text, "Fruit Rings") > strings.Index(text, "Sour Worms") {
		t.Fatalf("expected Fruit Rings first, got:\n%s", text)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	var out, errOut bytes.Buffer
	if err := run(context.Background(), []string{"-sort", "rating"}, &out, &errOut); err == nil {
		t.Fatal("expected sort error")
	}
	if err := run(context.Background(), []string{"-source", "ftp"}, &out, &errOut); err == nil {
		t.Fatal("expected source error")
	}
}
