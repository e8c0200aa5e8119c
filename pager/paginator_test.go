package pager_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/liststate-go/pager"
)

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

var _ = Describe("Paginator", func() {
	Describe("New", func() {
		It("uses the defaults for invalid values", func() {
			p := pager.New(0, 0, -5)

			Expect(p.Page()).To(Equal(1))
			Expect(p.ItemsPerPage()).To(Equal(20))
			Expect(p.TotalCount()).To(Equal(0))
		})

		It("does not validate the page against the total count", func() {
			p := pager.New(3, 20, 0)

			Expect(p.Page()).To(Equal(3))
		})
	})

	Describe("TotalPages", func() {
		DescribeTable("rounds up",
			func(totalCount, itemsPerPage, expected int) {
				p := pager.New(1, itemsPerPage, totalCount)
				Expect(p.TotalPages()).To(Equal(expected))
			},
			Entry("empty", 0, 20, 0),
			Entry("exact", 100, 20, 5),
			Entry("partial last page", 101, 20, 6),
			Entry("single item", 1, 20, 1),
		)
	})

	Describe("SetPage", func() {
		var p pager.Paginator

		BeforeEach(func() {
			p = pager.New(1, 20, 100)
		})

		It("accepts pages within bounds", func() {
			p.SetPage(5)
			Expect(p.Page()).To(Equal(5))
		})

		It("falls back to 1 beyond the last page", func() {
			p.SetPage(6)
			Expect(p.Page()).To(Equal(1))
		})

		It("falls back to 1 below the first page", func() {
			p.SetPage(-3)
			Expect(p.Page()).To(Equal(1))
		})

		It("only floors the page without validation", func() {
			p.SetPage(42, pager.WithoutValidation())
			Expect(p.Page()).To(Equal(42))

			p.SetPage(0, pager.WithoutValidation())
			Expect(p.Page()).To(Equal(1))
		})

		It("keeps the page within bounds for any input", func() {
			for totalCount := 0; totalCount <= 45; totalCount += 3 {
				for itemsPerPage := 1; itemsPerPage <= 7; itemsPerPage++ {
					for page := -2; page <= 50; page++ {
						q := pager.New(1, itemsPerPage, totalCount)
						q.SetPage(page)

						Expect(q.Page()).To(BeNumerically(">=", 1))
						Expect(q.Page()).To(BeNumerically("<=", max(q.TotalPages(), 1)))
					}
				}
			}
		})

		It("clamps to page 1 while no items are known", func() {
			q := pager.New(1, 20, 0)
			q.SetPage(5)
			Expect(q.Page()).To(Equal(1))

			q.SetTotalCount(100)
			q.SetPage(5)
			Expect(q.Page()).To(Equal(5))
		})
	})

	Describe("SetItemsPerPage", func() {
		It("floors at 1", func() {
			p := pager.New(1, 20, 100)
			p.SetItemsPerPage(0)
			Expect(p.ItemsPerPage()).To(Equal(1))
		})

		It("re-validates the page", func() {
			p := pager.New(5, 20, 100)
			p.SetItemsPerPage(50)
			Expect(p.Page()).To(Equal(1))
		})

		It("keeps the page without validation", func() {
			p := pager.New(5, 20, 100)
			p.SetItemsPerPage(50, pager.WithoutValidation())
			Expect(p.Page()).To(Equal(5))
		})
	})

	Describe("SetTotalCount", func() {
		It("floors at 0", func() {
			p := pager.New(1, 20, 100)
			p.SetTotalCount(-1)
			Expect(p.TotalCount()).To(Equal(0))
		})

		It("re-validates the page", func() {
			p := pager.New(4, 20, 100)
			p.SetTotalCount(40)
			Expect(p.Page()).To(Equal(1))
		})
	})

	Describe("ItemsForPage", func() {
		It("returns exactly the items of the current page", func() {
			items := sequence(60)

			for page := 1; page <= 3; page++ {
				p := pager.New(page, 20, len(items))
				Expect(pager.ItemsForPage(p, items)).To(Equal(items[(page-1)*20 : page*20]))
			}
		})

		It("returns a short last page", func() {
			p := pager.New(3, 20, 45)
			Expect(pager.ItemsForPage(p, sequence(45))).To(HaveLen(5))
		})

		It("returns nothing beyond the list", func() {
			p := pager.New(4, 20, 45)
			Expect(pager.ItemsForPage(p, sequence(45))).To(BeEmpty())
		})
	})

	Describe("PageInfo", func() {
		It("reports the page position", func() {
			p := pager.New(2, 10, 100)
			info := p.PageInfo()

			totalCount, _ := info.TotalCount()
			Expect(*totalCount).To(Equal(100))

			totalPages, _ := info.TotalPages()
			Expect(totalPages).To(Equal(10))

			hasNextPage, _ := info.HasNextPage()
			Expect(hasNextPage).To(BeTrue())

			hasPreviousPage, _ := info.HasPreviousPage()
			Expect(hasPreviousPage).To(BeTrue())

			startCursor, _ := info.StartCursor()
			Expect(startCursor).To(Equal(pager.EncodeCursor(0)))

			endCursor, _ := info.EndCursor()
			Expect(endCursor).To(Equal(pager.EncodeCursor(90)))
		})

		It("has no neighbours on a single page", func() {
			info := pager.New(1, 20, 5).PageInfo()

			hasNextPage, _ := info.HasNextPage()
			Expect(hasNextPage).To(BeFalse())

			hasPreviousPage, _ := info.HasPreviousPage()
			Expect(hasPreviousPage).To(BeFalse())
		})
	})

	Describe("ParseInt", func() {
		It("parses numbers", func() {
			Expect(pager.ParseInt(" 7 ", 1)).To(Equal(7))
		})

		It("falls back for garbage", func() {
			Expect(pager.ParseInt("seven", 1)).To(Equal(1))
			Expect(pager.ParseInt("", 20)).To(Equal(20))
		})
	})
})
