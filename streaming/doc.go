// Package streaming assembles partial chat updates into complete responses.
//
// A model backend that streams produces a sequence of Update fragments: each
// carries a sliver of content plus whatever scalar fields the provider chose
// to attach to that chunk. The Assembler folds those fragments, strictly in
// arrival order, into one messages.Response, handling message segmentation,
// field-merge precedence, usage accumulation, and text coalescing.
//
// Design decisions:
//   - Single owner: an assembly run owns its in-progress response exclusively,
//     so there is no locking and no internal parallelism; async sources are
//     consumed one fragment at a time
//   - Fail whole: an upstream error or a cancellation aborts the run without
//     exposing a partially built response
//   - Independent copies: additional-properties maps are copied out of
//     fragments, never aliased, so retained fragments stay inert
//
// Example usage:
//
//	resp, err := streaming.Response([]streaming.Update{
//	    {Role: messages.RoleAssistant, Contents: []messages.Content{messages.Text("Hello, ")}},
//	    {Contents: []messages.Content{messages.Text("world!")}},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(resp.Text()) // "Hello, world!"
//
// The reverse direction is available through Updates, which decomposes a
// response back into fragments for replay through stream-shaped plumbing.
package streaming
