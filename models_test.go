package liststate_test

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/liststate-go"
)

var _ = Describe("Models", func() {
	Describe("State.Clone", func() {
		It("should not share tags", func() {
			state := liststate.State{Page: 2, Tags: []string{"ops"}}
			clone := state.Clone()
			clone.Tags[0] = "finance"

			Expect(state.Tags).To(Equal([]string{"ops"}))
			Expect(clone.Page).To(Equal(2))
		})
	})

	Describe("Request.Values", func() {
		It("should omit zero values", func() {
			Expect(liststate.Request{}.Values()).To(BeEmpty())
		})

		It("should encode every parameter", func() {
			req := liststate.Request{
				Page:     2,
				PageSize: 20,
				Order:    "-created_at",
				Q:        null.StringFrom("report"),
				Tags:     []string{"finance", "ops"},
				Params:   map[string]string{"team": "core"},
			}

			Expect(req.Values().Encode()).To(Equal(
				"order=-created_at&page=2&page_size=20&q=report&tags=finance&tags=ops&team=core",
			))
		})

		It("should keep an explicitly empty search term", func() {
			req := liststate.Request{Q: null.StringFrom("")}

			Expect(req.Values()).To(HaveKeyWithValue("q", []string{""}))
		})
	})

	Describe("FetchContext", func() {
		It("should carry the generation and a copy of the state", func() {
			state := liststate.State{Page: 3, Tags: []string{"ops"}}
			fctx := liststate.NewFetchContext(7, state)
			state.Tags[0] = "changed"

			Expect(fctx.Generation).To(Equal(uint64(7)))
			Expect(fctx.RequestID).ToNot(Equal(uuid.Nil))
			Expect(fctx.State.Tags).To(Equal([]string{"ops"}))
		})

		It("should merge custom params", func() {
			fctx := liststate.NewFetchContext(1, liststate.State{})
			fctx.SetCustomParams(map[string]any{"a": 1, "b": 2})
			fctx.SetCustomParams(map[string]any{"b": 3})

			Expect(fctx.CustomParams()).To(Equal(map[string]any{"a": 1, "b": 3}))
		})

		It("should hand out copies of the params", func() {
			fctx := liststate.NewFetchContext(1, liststate.State{})
			fctx.SetCustomParams(map[string]any{"a": 1})
			fctx.CustomParams()["a"] = 2

			Expect(fctx.CustomParams()).To(HaveKeyWithValue("a", 1))
		})

		It("should accept params on a zero value", func() {
			fctx := &liststate.FetchContext{}
			fctx.SetCustomParams(map[string]any{"a": 1})

			Expect(fctx.CustomParams()).To(HaveKeyWithValue("a", 1))
		})
	})

	Describe("ListenerFuncs", func() {
		It("should ignore missing callbacks", func() {
			var listener liststate.Listener[int] = liststate.ListenerFuncs[int]{}
			ctx := context.Background()

			Expect(func() {
				listener.OnBeforeUpdate(ctx, liststate.Snapshot[int]{})
				listener.OnAfterUpdate(ctx, liststate.Snapshot[int]{})
				listener.OnError(ctx, nil)
			}).ToNot(Panic())
		})
	})
})
