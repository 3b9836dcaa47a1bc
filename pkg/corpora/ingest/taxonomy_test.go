package ingest

import "testing"

func TestTaxonomyExtractEntities(t *testing.T) {
	tax := NewTaxonomy()
	tax.AddEntity("org", "OpenAI", []string{"open-ai"})
	tax.AddEntity("GPE", "France", []string{"french republic"})

	got := tax.ExtractEntities("OpenAI opened an office in France. Open-AI likes France.")

	want := []Entity{
		{"OpenAI", LabelOrg},
		{"France", LabelGPE},
		{"OpenAI", LabelOrg},
		{"France", LabelGPE},
	}
	if len(got) != len(want) {
		t.Fatalf("ExtractEntities = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entity %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTaxonomyWordBoundaries(t *testing.T) {
	tax := NewTaxonomy()
	tax.AddEntity(LabelLoc, "Nile", nil)

	if got := tax.ExtractEntities("senile penile"); len(got) != 0 {
		t.Errorf("keyword inside a word should not match, got %+v", got)
	}
}

func TestTaxonomyQuantities(t *testing.T) {
	tax := NewTaxonomy()

	got := tax.ExtractEntities("The bag weighs 5 kg and the road is 12.5 miles long.")
	if len(got) != 2 {
		t.Fatalf("expected 2 quantities, got %+v", got)
	}
	if got[0].Text != "5 kg" || got[0].Label != LabelQuantity {
		t.Errorf("first quantity = %+v", got[0])
	}
	if got[1].Text != "12.5 miles" {
		t.Errorf("second quantity = %+v", got[1])
	}
}

func TestTaxonomyOverlapKeepsLongest(t *testing.T) {
	tax := NewTaxonomy()
	tax.AddEntity(LabelGPE, "York", nil)
	tax.AddEntity(LabelGPE, "New York", nil)

	got := tax.ExtractEntities("I moved to New York")
	if len(got) != 1 || got[0].Text != "New York" {
		t.Errorf("expected single longest match, got %+v", got)
	}
}

func TestTaxonomyLabels(t *testing.T) {
	tax := NewTaxonomy()
	tax.AddEntity("person", "Ada Lovelace", nil)
	tax.AddEntity("org", "IBM", nil)

	labels := tax.Labels()
	if len(labels) != 2 || labels[0] != "ORG" || labels[1] != "PERSON" {
		t.Errorf("Labels = %v", labels)
	}
}

func TestTaxonomyEmpty(t *testing.T) {
	tax := NewTaxonomy()
	if got := tax.ExtractEntities("nothing to see here"); len(got) != 0 {
		t.Errorf("empty taxonomy should find nothing, got %+v", got)
	}
}
