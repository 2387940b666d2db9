package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"setnodeid"
	"setnodeid/console"
	"setnodeid/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	OperationName = "setnodeid.provision"

	LineSetting = "setting nodeId..."
	LineSet     = "set nodeId = "
	LineRead    = "read nodeId: "
	LineSuccess = "SUCCESS"
	LineFail    = "*** FAIL ***"
)

var ErrAlreadyRan = errors.New("node identity already provisioned in this run")

var plan = telemetry.Plan{
	{ID: "console", Title: "open diagnostic console"},
	{ID: OpBegin, Title: "initialize storage"},
	{ID: OpWrite, Title: "write node id"},
	{ID: OpCommit, Title: "commit storage"},
	{ID: OpRead, Title: "read node id back"},
	{ID: "verify", Title: "compare"},
}

// Store is a byte-addressable persistent region. *eeprom.EEPROM implements it.
type Store interface {
	Begin(ctx context.Context, size int) error
	Write(off int, v byte) error
	Commit(ctx context.Context) error
	Read(off int) (byte, error)
}

// ConsoleOpener returns the diagnostic output. When it fails but still
// returns a writer, output goes to that writer; a nil writer discards.
type ConsoleOpener func(ctx context.Context) (io.Writer, error)

type Option func(*Writer)

// WithConsole sets where diagnostic lines go. The default discards them.
func WithConsole(open ConsoleOpener) Option {
	return func(w *Writer) { w.openConsole = open }
}

// WithTracer overrides the global tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(w *Writer) { w.tracer = tracer }
}

// Writer is the node identity writer. It runs once.
type Writer struct {
	store       Store
	openConsole ConsoleOpener
	tracer      trace.Tracer
	phase       atomic.Uint32
}

func New(store Store, opts ...Option) *Writer {
	w := &Writer{
		store:  store,
		tracer: otel.Tracer("setnodeid/provision"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Result is the outcome of a run. Err is nil exactly when Verified is true;
// otherwise it matches ErrVerificationMismatch and, for storage failures,
// unwraps to *StorageError.
type Result struct {
	ID       setnodeid.NodeID
	ReadBack byte
	Verified bool
	Err      error
}

func (w *Writer) Phase() Phase {
	return Phase(w.phase.Load())
}

// Run writes id at the identity offset, commits, reads it back and prints the
// verdict. The returned error is only non-nil when the Writer already ran;
// a failed verification is reported in Result.
func (w *Writer) Run(ctx context.Context, id setnodeid.NodeID) (Result, error) {
	if !w.phase.CompareAndSwap(uint32(PhasePending), uint32(PhaseInitializing)) {
		return Result{}, fmt.Errorf("run: %w (phase %s)", ErrAlreadyRan, w.Phase())
	}
	defer w.phase.Store(uint32(PhaseIdle))

	res := Result{ID: id}

	op, err := telemetry.Start(ctx, w.tracer, OperationName, plan,
		attribute.Int("setnodeid.node_id", int(id)))
	if err != nil {
		slog.Debug("Telemetry disabled for run.", "err", err)
		op = nil
	}
	defer func() { op.End(res.Err) }()
	if op != nil {
		ctx = op.Context()
	}

	// A console failure is recorded on its span; provisioning continues
	// with whatever port the opener returned.
	var out io.Writer
	_ = op.RunStep(ctx, "console", func(ctx context.Context) error {
		var err error
		out, err = w.openOutput(ctx)
		return err
	})
	p := newLinePrinter(out)

	p.println(LineSetting)

	var storageErrs []error
	record := func(name string, err error) bool {
		if err == nil {
			return true
		}
		storageErrs = append(storageErrs, &StorageError{Op: name, Err: err})
		slog.Error("Storage operation failed.", "op", name, "node_id", id, "err", err)
		return false
	}

	begun := record(OpBegin, op.RunStep(ctx, OpBegin, func(ctx context.Context) error {
		return w.store.Begin(ctx, setnodeid.IdentitySize)
	}))

	w.phase.Store(uint32(PhaseVerifying))

	if begun {
		record(OpWrite, op.RunStep(ctx, OpWrite, func(context.Context) error {
			return w.store.Write(setnodeid.IdentityOffset, id.Byte())
		}))
		record(OpCommit, op.RunStep(ctx, OpCommit, func(ctx context.Context) error {
			return w.store.Commit(ctx)
		}))
	}
	p.println(LineSet, id)

	readOK := false
	if begun {
		readOK = record(OpRead, op.RunStep(ctx, OpRead, func(context.Context) error {
			v, err := w.store.Read(setnodeid.IdentityOffset)
			if err != nil {
				return err
			}
			res.ReadBack = v
			return nil
		}))
	}
	p.println(LineRead, res.ReadBack)

	res.Err = op.RunStep(ctx, "verify", func(context.Context) error {
		return verify(id, res.ReadBack, readOK, storageErrs)
	})
	res.Verified = res.Err == nil

	if res.Verified {
		p.println(LineSuccess)
		slog.Info("Node ID verified.", "node_id", id)
	} else {
		p.println(LineFail)
		slog.Error("Node ID verification failed.", "node_id", id, "read", res.ReadBack, "err", res.Err)
	}
	op.SetAttributes(attribute.Bool("setnodeid.verified", res.Verified))

	return res, nil
}

// Idle blocks until ctx ends. It is the terminal state after Run.
func (w *Writer) Idle(ctx context.Context) {
	<-ctx.Done()
}

func (w *Writer) openOutput(ctx context.Context) (io.Writer, error) {
	if w.openConsole == nil {
		return io.Discard, nil
	}
	out, err := w.openConsole(ctx)
	if err != nil {
		slog.Warn("Diagnostic console unavailable, continuing without output.", "err", err)
	}
	if out == nil {
		out = io.Discard
	}
	return out, err
}

func verify(id setnodeid.NodeID, got byte, readOK bool, storageErrs []error) error {
	var errs []error
	if readOK && got != id.Byte() {
		errs = append(errs, &MismatchError{Want: id.Byte(), Got: got})
	}
	if len(storageErrs) > 0 {
		errs = append(errs, storageErrs...)
		if len(errs) == len(storageErrs) {
			errs = append(errs, ErrVerificationMismatch)
		}
	}
	return errors.Join(errs...)
}

type linePrinter struct {
	p      *console.Printer
	failed bool
}

func newLinePrinter(w io.Writer) *linePrinter {
	return &linePrinter{p: console.NewPrinter(w)}
}

func (l *linePrinter) println(a ...any) {
	if err := l.p.Println(a...); err != nil && !l.failed {
		l.failed = true
		slog.Warn("Diagnostic console write failed.", "err", err)
	}
}
