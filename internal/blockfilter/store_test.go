package blockfilter

import "testing"

func TestAlignedWordsAlignment(t *testing.T) {
	for _, n := range []int{1, 3, 16, 1000} {
		store := NewAlignedWords[uint64](n)
		if !store.Aligned() {
			t.Fatalf("store of %d uint64 words is not 64-byte aligned", n)
		}
		if store.Len() != n {
			t.Fatalf("Len() = %d, want %d", store.Len(), n)
		}
	}
}

func TestAlignedWordsZeroFilled(t *testing.T) {
	store := NewAlignedWords[uint32](256)
	for i, w := range store.Words() {
		if w != 0 {
			t.Fatalf("word %d not zero-filled at construction: %d", i, w)
		}
	}
}

func TestAlignedWordsEqualIgnoresContents(t *testing.T) {
	a := NewAlignedWords[uint32](8)
	b := NewAlignedWords[uint32](8)

	a.Words()[0] = 0xffffffff

	if !a.Equal(b) {
		t.Fatal("Equal should compare alignment only, not contents")
	}
}

func TestAlignedWordsViewAliasesBacking(t *testing.T) {
	store := NewAlignedWords[uint64](4)
	store.Words()[2] = 42

	if store.Words()[2] != 42 {
		t.Fatal("Words() view does not alias the store's own memory")
	}
}

func TestNewAlignedWordsPanicsOnNonPositiveSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive size")
		}
	}()
	NewAlignedWords[uint32](0)
}
