package fetch

import (
	"context"
	"errors"
	"testing"
)

func constLoad(v int, err error) LoadFunc[int] {
	return func(ctx context.Context) (int, error) { return v, err }
}

func TestNew_StartsIdle(t *testing.T) {
	f := New[int]("numbers", nil)

	if f.State().Status != Idle {
		t.Errorf("expected Idle, got %s", f.State().Status)
	}
	if f.Seq() != 0 {
		t.Errorf("expected seq 0, got %d", f.Seq())
	}
	if _, ok := f.Last(); ok {
		t.Error("expected no last value before first success")
	}
	if !f.State().Pending() {
		t.Error("idle state should be pending")
	}
}

func TestIssue_TransitionsToLoading(t *testing.T) {
	f := New[int]("numbers", nil)
	task := f.Issue(context.Background(), constLoad(1, nil))

	if task == nil {
		t.Fatal("expected task")
	}
	if f.State().Status != Loading {
		t.Errorf("expected Loading, got %s", f.State().Status)
	}
	if f.Seq() != 1 {
		t.Errorf("expected seq 1, got %d", f.Seq())
	}
}

func TestApply_Ready(t *testing.T) {
	f := New[int]("numbers", nil)
	task := f.Issue(context.Background(), constLoad(42, nil))

	res := task().(Result[int])
	if !f.Apply(res) {
		t.Fatal("expected result to apply")
	}

	st := f.State()
	if st.Status != Ready || st.Value != 42 {
		t.Errorf("expected Ready(42), got %s(%d)", st.Status, st.Value)
	}
	if v, ok := f.Last(); !ok || v != 42 {
		t.Errorf("Last() = %d, %v; want 42, true", v, ok)
	}
}

func TestApply_Failed(t *testing.T) {
	f := New[int]("numbers", nil)
	task := f.Issue(context.Background(), constLoad(0, errors.New("connection refused")))

	f.Apply(task().(Result[int]))

	st := f.State()
	if st.Status != Failed {
		t.Fatalf("expected Failed, got %s", st.Status)
	}
	if st.Err != "connection refused" {
		t.Errorf("Err = %q, want %q", st.Err, "connection refused")
	}
}

func TestApply_StaleResultDropped(t *testing.T) {
	f := New[int]("numbers", nil)
	first := f.Issue(context.Background(), constLoad(1, nil))
	second := f.Issue(context.Background(), constLoad(2, nil))

	// Newer request resolves first
	if !f.Apply(second().(Result[int])) {
		t.Fatal("latest result should apply")
	}
	// Older request resolves late
	if f.Apply(first().(Result[int])) {
		t.Error("stale result should not apply")
	}

	if got := f.State().Value; got != 2 {
		t.Errorf("expected value from latest request (2), got %d", got)
	}
}

func TestApply_StaleWhileLoadingKeepsLoading(t *testing.T) {
	f := New[int]("numbers", nil)
	first := f.Issue(context.Background(), constLoad(1, nil))
	_ = f.Issue(context.Background(), constLoad(2, nil))

	f.Apply(first().(Result[int]))

	if f.State().Status != Loading {
		t.Errorf("stale result must not end the newer load, got %s", f.State().Status)
	}
}

func TestApply_ForeignResourceIgnored(t *testing.T) {
	f := New[int]("numbers", nil)
	f.Issue(context.Background(), constLoad(1, nil))

	if f.Apply(Result[int]{Resource: "other", Seq: 1, Value: 9}) {
		t.Error("result for another resource should not apply")
	}
}

func TestLast_SurvivesReload(t *testing.T) {
	f := New[int]("numbers", nil)
	f.Apply(f.Issue(context.Background(), constLoad(7, nil))().(Result[int]))

	f.Issue(context.Background(), constLoad(8, nil))
	if v, ok := f.Last(); !ok || v != 7 {
		t.Errorf("during reload Last() = %d, %v; want 7, true", v, ok)
	}

	f.Apply(Result[int]{Resource: "numbers", Seq: f.Seq(), Err: errors.New("boom")})
	if v, ok := f.Last(); !ok || v != 7 {
		t.Errorf("after failure Last() = %d, %v; want 7, true", v, ok)
	}
}

func TestTask_RecoversPanic(t *testing.T) {
	f := New[int]("numbers", nil)
	task := f.Issue(context.Background(), func(ctx context.Context) (int, error) {
		panic("bad payload")
	})

	res, ok := task().(Result[int])
	if !ok {
		t.Fatal("expected Result[int]")
	}
	if res.Err == nil {
		t.Fatal("expected panic converted to error")
	}
	f.Apply(res)
	if f.State().Status != Failed {
		t.Errorf("expected Failed, got %s", f.State().Status)
	}
}

func TestCompletion_Interface(t *testing.T) {
	f := New[string]("words", nil)
	c := f.Issue(context.Background(), func(ctx context.Context) (string, error) { return "hi", nil })()

	if c.ResourceName() != "words" {
		t.Errorf("ResourceName() = %q", c.ResourceName())
	}
	if c.Sequence() != 1 {
		t.Errorf("Sequence() = %d", c.Sequence())
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Idle, "idle"},
		{Loading, "loading"},
		{Ready, "ready"},
		{Failed, "failed"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
