package orders

import (
	"strings"
	"testing"
)

func TestReceiptPayload(t *testing.T) {
	p := ReceiptPayload("NB-20250314-123456", "o1")

	parts := strings.Split(p, "|")
	if len(parts) != 3 {
		t.Fatalf("payload %q has %d parts, want 3", p, len(parts))
	}
	if parts[0] != "NB-20250314-123456" || parts[1] != "o1" {
		t.Errorf("payload identity fields = %q, %q", parts[0], parts[1])
	}
	if parts[2] == "" {
		t.Error("missing signature")
	}

	// deterministic for the same order
	if again := ReceiptPayload("NB-20250314-123456", "o1"); again != p {
		t.Error("payload not deterministic")
	}

	// different orders must not share a signature
	other := ReceiptPayload("NB-20250314-123456", "o2")
	if strings.Split(other, "|")[2] == parts[2] {
		t.Error("signature did not change with order id")
	}
}
