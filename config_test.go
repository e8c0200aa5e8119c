package liststate_test

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/nrfta/liststate-go"
)

var _ = Describe("Config", func() {
	Describe("NewConfig", func() {
		It("should use sensible defaults", func() {
			cfg := liststate.NewConfig()

			Expect(cfg.DefaultPageSize).To(Equal(20))
			Expect(cfg.MaxPageSize).To(Equal(250))
			Expect(cfg.DefaultOrderField).To(Equal("created_at"))
			Expect(cfg.DefaultOrderReverse).To(BeFalse())
		})

		It("should chain With* methods", func() {
			cfg := liststate.NewConfig().
				WithDefaultPageSize(50).
				WithMaxPageSize(500).
				WithDefaultOrder("name", true)

			Expect(cfg.DefaultPageSize).To(Equal(50))
			Expect(cfg.MaxPageSize).To(Equal(500))
			Expect(cfg.DefaultOrderField).To(Equal("name"))
			Expect(cfg.DefaultOrderReverse).To(BeTrue())
		})

		It("should ignore non-positive sizes", func() {
			cfg := liststate.NewConfig().WithDefaultPageSize(0).WithMaxPageSize(-1)

			Expect(cfg.DefaultPageSize).To(Equal(20))
			Expect(cfg.MaxPageSize).To(Equal(250))
		})
	})

	Describe("ClampPageSize", func() {
		DescribeTable("normalizes page sizes",
			func(size, expected int) {
				cfg := liststate.NewConfig().WithMaxPageSize(100)
				Expect(cfg.ClampPageSize(size)).To(Equal(expected))
			},
			Entry("zero selects the default", 0, 20),
			Entry("negative selects the default", -5, 20),
			Entry("in range is kept", 42, 42),
			Entry("maximum is kept", 100, 100),
			Entry("above maximum is capped", 1000, 100),
		)

		It("should work on a nil config", func() {
			var cfg *liststate.Config
			Expect(cfg.ClampPageSize(0)).To(Equal(20))
		})
	})

	Describe("DefaultState", func() {
		It("should start on the first page with the default order", func() {
			state := liststate.NewConfig().WithDefaultOrder("name", true).DefaultState()

			Expect(state.Page).To(Equal(1))
			Expect(state.ItemsPerPage).To(Equal(20))
			Expect(state.OrderByField).To(Equal("name"))
			Expect(state.OrderByReverse).To(BeTrue())
			Expect(state.SearchTerm).To(BeEmpty())
			Expect(state.Tags).ToNot(BeNil())
			Expect(state.Tags).To(BeEmpty())
		})
	})

	Describe("ConfigFromViper", func() {
		readYAML := func(yaml string) *viper.Viper {
			v := viper.New()
			v.SetConfigType("yaml")
			Expect(v.ReadConfig(bytes.NewBufferString(yaml))).To(Succeed())
			return v
		}

		It("should read the list keys", func() {
			cfg, err := liststate.ConfigFromViper(readYAML(`
list:
  page_size: 50
  max_page_size: 500
  order_by: name
  order_reverse: true
`))

			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.DefaultPageSize).To(Equal(50))
			Expect(cfg.MaxPageSize).To(Equal(500))
			Expect(cfg.DefaultOrderField).To(Equal("name"))
			Expect(cfg.DefaultOrderReverse).To(BeTrue())
		})

		It("should keep defaults for missing keys", func() {
			cfg, err := liststate.ConfigFromViper(readYAML("list:\n  page_size: 10\n"))

			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.DefaultPageSize).To(Equal(10))
			Expect(cfg.MaxPageSize).To(Equal(250))
			Expect(cfg.DefaultOrderField).To(Equal("created_at"))
		})

		It("should allow clearing the default order", func() {
			cfg, err := liststate.ConfigFromViper(readYAML("list:\n  order_by: \"\"\n"))

			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.DefaultOrderField).To(BeEmpty())
		})

		It("should accept a nil viper", func() {
			cfg, err := liststate.ConfigFromViper(nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(cfg).To(Equal(liststate.NewConfig()))
		})

		It("should reject unusable page sizes", func() {
			_, err := liststate.ConfigFromViper(readYAML("list:\n  page_size: 0\n"))

			var configErr *liststate.ConfigError
			Expect(err).To(BeAssignableToTypeOf(configErr))
			Expect(err.Error()).To(Equal("invalid list config list.page_size=0: must be at least 1"))
		})

		It("should reject a maximum below the default", func() {
			_, err := liststate.ConfigFromViper(readYAML("list:\n  page_size: 50\n  max_page_size: 10\n"))

			Expect(err).To(MatchError(ContainSubstring("list.max_page_size=10")))
			Expect(errors.Is(err, liststate.ErrInvalidConfig)).To(BeTrue())
		})
	})
})
