package streaming

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/fogfish/opts"
	"github.com/rs/zerolog"

	"github.com/strix-ai/strix/messages"
	"github.com/strix-ai/strix/pkg/jsonx"
)

var (
	// ErrNilSource is returned when an assembly entry point is handed a nil
	// fragment source, before any consumption begins.
	ErrNilSource = errors.New("streaming: nil update source")

	// ErrNilDestination is returned by AppendTo when the destination message
	// list is nil.
	ErrNilDestination = errors.New("streaming: nil destination message list")

	// ErrMissingRole is returned when the first fragment of a logical message
	// carries no role and no earlier role is known to fall back to.
	ErrMissingRole = errors.New("streaming: update starts a message without a role")
)

var (
	// Logger sets the logger the assembler traces fragment handling with.
	// The default logger is disabled.
	Logger = opts.ForName[Assembler, zerolog.Logger]("log")

	// Coalescing toggles the finalization pass that merges adjacent
	// same-kind text runs. It is on unless explicitly disabled.
	Coalescing = opts.ForName[Assembler, bool]("coalesce")
)

// Assembler folds ordered update fragments into complete responses. It is
// stateless across runs: each call owns its in-progress response exclusively,
// so one Assembler may serve concurrent calls.
type Assembler struct {
	log      zerolog.Logger
	coalesce bool
}

// New creates an Assembler. It panics if an option cannot be applied, which
// only happens on programmer error.
func New(options ...opts.Option[Assembler]) *Assembler {
	a := &Assembler{
		log:      zerolog.Nop(),
		coalesce: true,
	}
	if err := opts.Apply(a, options); err != nil {
		panic(err)
	}
	return a
}

var defaultAssembler = New()

// Response assembles a finite fragment sequence using a default Assembler.
func Response(updates []Update) (*messages.Response, error) {
	return defaultAssembler.Response(updates)
}

// ResponseStream assembles a channel-fed fragment sequence using a default
// Assembler.
func ResponseStream(ctx context.Context, updates <-chan Update) (*messages.Response, error) {
	return defaultAssembler.ResponseStream(ctx, updates)
}

// Response folds a finite, in-memory fragment sequence into one response.
// A nil slice is an invalid argument; an empty one yields an empty response.
func (a *Assembler) Response(updates []Update) (*messages.Response, error) {
	if updates == nil {
		return nil, ErrNilSource
	}

	resp := &messages.Response{}
	for i := range updates {
		if err := a.fold(resp, &updates[i]); err != nil {
			return nil, err
		}
	}
	return a.finalize(resp), nil
}

// ResponseStream folds fragments received over a channel into one response,
// until the channel closes. Cancellation is observed between fragments: a
// done context aborts the run with ctx.Err() and no partial response.
func (a *Assembler) ResponseStream(ctx context.Context, updates <-chan Update) (*messages.Response, error) {
	if updates == nil {
		return nil, ErrNilSource
	}

	resp := &messages.Response{}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case u, ok := <-updates:
			if !ok {
				return a.finalize(resp), nil
			}
			if err := a.fold(resp, &u); err != nil {
				return nil, err
			}
		}
	}
}

// ResponseSeq folds fragments pulled from an error-aware iterator into one
// response. An error yielded by the source propagates verbatim; cancellation
// is observed before each pull.
func (a *Assembler) ResponseSeq(ctx context.Context, updates iter.Seq2[Update, error]) (*messages.Response, error) {
	if updates == nil {
		return nil, ErrNilSource
	}

	resp := &messages.Response{}
	for u, err := range updates {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		if err != nil {
			return nil, err
		}
		if ferr := a.fold(resp, &u); ferr != nil {
			return nil, ferr
		}
	}
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	return a.finalize(resp), nil
}

// AppendTo assembles a finite fragment sequence and appends the resulting
// messages onto a caller-supplied list, for callers accumulating a
// conversation instead of handling whole responses.
func (a *Assembler) AppendTo(updates []Update, list *[]messages.Message) error {
	if list == nil {
		return ErrNilDestination
	}
	resp, err := a.Response(updates)
	if err != nil {
		return err
	}
	*list = append(*list, resp.Messages...)
	return nil
}

// fold merges one fragment into the in-progress response. No step in here
// can fail on well-formed input; the only error is a missing role at a
// message boundary.
func (a *Assembler) fold(resp *messages.Response, u *Update) error {
	switch {
	case len(resp.Messages) == 0:
		if err := beginMessage(resp, u); err != nil {
			return err
		}
	case u.MessageID != "" &&
		resp.Messages[len(resp.Messages)-1].MessageID != "" &&
		resp.Messages[len(resp.Messages)-1].MessageID != u.MessageID:
		if err := beginMessage(resp, u); err != nil {
			return err
		}
	}
	msg := &resp.Messages[len(resp.Messages)-1]

	if u.Role != "" {
		msg.Role = u.Role
	}
	if name := strings.TrimSpace(u.Name); name != "" {
		msg.Name = name
	}
	if !u.Timestamp.IsZero() {
		msg.Timestamp = u.Timestamp
	}
	// The identifier lands only after segmentation ran: assigning it earlier
	// would make this same fragment look like a boundary.
	if u.MessageID != "" {
		msg.MessageID = u.MessageID
	}

	for _, c := range u.Contents {
		if usage, ok := c.(messages.UsageContent); ok {
			foldUsage(resp, usage)
			continue
		}
		msg.Contents = append(msg.Contents, c)
	}

	mergeResponseFields(resp, u)

	a.log.Trace().
		Str("role", msg.Role.String()).
		Str("message_id", u.MessageID).
		Int("contents", len(u.Contents)).
		Msg("folded update")

	return nil
}

// beginMessage appends a fresh message, resolving its role from the fragment
// or, failing that, from the most recent message.
func beginMessage(resp *messages.Response, u *Update) error {
	role := u.Role
	if role == "" && len(resp.Messages) > 0 {
		role = resp.Messages[len(resp.Messages)-1].Role
	}
	if role == "" {
		return fmt.Errorf("%w (message_id %q)", ErrMissingRole, u.MessageID)
	}
	resp.Messages = append(resp.Messages, messages.Message{Role: role})
	return nil
}

// foldUsage accumulates a usage fragment into the response aggregate. Absent
// counters contribute nothing.
func foldUsage(resp *messages.Response, usage messages.UsageContent) {
	if usage.Usage == nil {
		return
	}
	if resp.Usage == nil {
		resp.Usage = &messages.Usage{}
	}
	resp.Usage.Add(usage.Usage)
}

// mergeResponseFields applies the fragment's response-level fields, latest
// value winning. Meta entries are copied into an independent map so a caller
// holding on to the fragment cannot mutate the assembled response.
func mergeResponseFields(resp *messages.Response, u *Update) {
	if u.ResponseID != "" {
		resp.ResponseID = u.ResponseID
	}
	if u.ConversationID != "" {
		resp.ConversationID = u.ConversationID
	}
	if !u.Timestamp.IsZero() {
		resp.Timestamp = u.Timestamp
	}
	if u.FinishReason != "" {
		resp.FinishReason = u.FinishReason
	}
	if u.ModelID != "" {
		resp.ModelID = u.ModelID
	}
	if len(u.Meta) > 0 {
		if resp.Meta == nil {
			resp.Meta = jsonx.Clone(u.Meta)
		} else {
			for k, v := range jsonx.Clone(u.Meta) {
				resp.Meta[k] = v
			}
		}
	}
}

func (a *Assembler) finalize(resp *messages.Response) *messages.Response {
	if a.coalesce {
		for i := range resp.Messages {
			CoalesceText(&resp.Messages[i].Contents)
		}
	}

	a.log.Debug().
		Int("messages", len(resp.Messages)).
		Str("finish_reason", resp.FinishReason.String()).
		Msg("assembled response")

	return resp
}
