package liststate_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/liststate-go"
	"github.com/nrfta/liststate-go/pager"
)

// Mock database models
type DBUser struct {
	ID   int
	Name string
}

// Mock domain models
type DomainUser struct {
	ID       string
	FullName string
}

var _ = Describe("BuildConnection", func() {
	users := func(ids ...int) []DBUser {
		out := make([]DBUser, len(ids))
		for i, id := range ids {
			out[i] = DBUser{ID: id, Name: fmt.Sprintf("User %d", id)}
		}
		return out
	}

	toDomain := func(u DBUser) (DomainUser, error) {
		return DomainUser{ID: fmt.Sprintf("user-%d", u.ID), FullName: u.Name}, nil
	}

	It("should transform the page items into nodes and edges", func() {
		p := pager.New(2, 3, 10)
		snapshot := liststate.Snapshot[DBUser]{PageItems: users(4, 5, 6), TotalCount: 10}

		conn, err := liststate.BuildConnection(snapshot, p.PageInfo(), p.EdgeCursor, toDomain)

		Expect(err).ToNot(HaveOccurred())
		Expect(conn.Nodes).To(HaveLen(3))
		Expect(conn.Nodes[0]).To(Equal(DomainUser{ID: "user-4", FullName: "User 4"}))
		Expect(conn.Edges).To(HaveLen(3))
		Expect(conn.Edges[2].Node).To(Equal(conn.Nodes[2]))
		Expect(conn.Edges[0].Cursor).To(Equal(*pager.EncodeCursor(3)))
		Expect(conn.Edges[2].Cursor).To(Equal(*pager.EncodeCursor(5)))

		hasNext, _ := conn.PageInfo.HasNextPage()
		hasPrev, _ := conn.PageInfo.HasPreviousPage()
		Expect(hasNext).To(BeTrue())
		Expect(hasPrev).To(BeTrue())
	})

	It("should return an empty connection for an empty page", func() {
		conn, err := liststate.BuildConnection(liststate.Snapshot[DBUser]{}, *liststate.NewEmptyPageInfo(),
			func(int) string { return "" }, toDomain)

		Expect(err).ToNot(HaveOccurred())
		Expect(conn.Nodes).ToNot(BeNil())
		Expect(conn.Nodes).To(BeEmpty())
		Expect(conn.Edges).To(BeEmpty())

		totalCount, _ := conn.PageInfo.TotalCount()
		Expect(totalCount).To(BeNil())
	})

	It("should report the index of a failing transform", func() {
		snapshot := liststate.Snapshot[DBUser]{PageItems: users(1, 2)}
		failing := func(u DBUser) (DomainUser, error) {
			if u.ID == 2 {
				return DomainUser{}, fmt.Errorf("invalid user")
			}
			return toDomain(u)
		}

		conn, err := liststate.BuildConnection(snapshot, *liststate.NewEmptyPageInfo(),
			func(int) string { return "" }, failing)

		Expect(conn).To(BeNil())
		Expect(err).To(MatchError("transform item at index 1: invalid user"))
	})
})
