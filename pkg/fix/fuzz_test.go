package fix_test

import (
	"testing"

	"github.com/yaklabco/propslint/pkg/fix"
)

func FuzzGenerateDiff(f *testing.F) {
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("a=1"), []byte("a=1"))
	f.Add([]byte("a=1"), []byte("a:1"))
	f.Add([]byte("a=1\nb=2\na=3\n"), []byte("b=2\na=3\n"))
	f.Add([]byte("a=1\r\nb=2\r\n"), []byte("a=1\nb=2\n"))
	f.Add([]byte("k=\\\n  v\n"), []byte(""))

	f.Fuzz(func(t *testing.T, original, modified []byte) {
		diff := fix.GenerateDiff("app.properties", original, modified)
		if diff == nil {
			return
		}

		_ = diff.String()

		var adds, removes int
		for i, hunk := range diff.Hunks {
			if hunk.OriginalStart < 0 || hunk.ModifiedStart < 0 {
				t.Errorf("hunk %d: negative start %s", i, hunk.Header())
			}

			var ctx, add, rem int
			for _, line := range hunk.Lines {
				switch line.Kind {
				case fix.LineContext:
					ctx++
				case fix.LineAdd:
					add++
				case fix.LineRemove:
					rem++
				}
			}
			if ctx+rem != hunk.OriginalCount {
				t.Errorf("hunk %d: context(%d) + remove(%d) != %d", i, ctx, rem, hunk.OriginalCount)
			}
			if ctx+add != hunk.ModifiedCount {
				t.Errorf("hunk %d: context(%d) + add(%d) != %d", i, ctx, add, hunk.ModifiedCount)
			}
			adds += add
			removes += rem
		}

		if adds != diff.Additions || removes != diff.Deletions {
			t.Errorf("totals +%d -%d, counted +%d -%d", diff.Additions, diff.Deletions, adds, removes)
		}
	})
}

func FuzzPrepare(f *testing.F) {
	f.Add([]byte("a=1\nb=2\na=3\n"), 0, 4, 1, 2)
	f.Add([]byte("a:1"), 1, 2, 1, 2)
	f.Add([]byte("abc"), 0, 3, 1, 1)

	f.Fuzz(func(t *testing.T, content []byte, s1, e1, s2, e2 int) {
		edits := []fix.TextEdit{fix.Delete(s1, e1), fix.Replace(s2, e2, "=")}

		accepted, _, err := fix.Prepare(edits, len(content))
		if err != nil {
			return
		}

		for i := 1; i < len(accepted); i++ {
			if accepted[i].StartOffset < accepted[i-1].EndOffset {
				t.Fatalf("accepted edits overlap: %+v", accepted)
			}
		}

		_ = fix.ApplyEdits(content, accepted)
	})
}
