package commands

import (
	"flag"
	"strings"

	"taskboard/internal/service"
)

// optString is a string flag that remembers whether it was given.
type optString struct {
	set   bool
	value string
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(v string) error {
	o.set = true
	o.value = v
	return nil
}

// optionalFlag registers one optString under several names.
func optionalFlag(fs *flag.FlagSet, o *optString, names ...string) {
	*o = optString{}
	for _, n := range names {
		fs.Var(o, n, "")
	}
}

// criteriaFlags holds the filter and sort flags shared by list and board.
type criteriaFlags struct {
	keyword  string
	category string
	priority string
	status   string
	overdue  bool
	sortBy   string
	asc      bool
}

func (c *criteriaFlags) register(fs *flag.FlagSet) {
	*c = criteriaFlags{}
	fs.StringVar(&c.keyword, "keyword", "", "")
	fs.StringVar(&c.keyword, "k", "", "")
	fs.StringVar(&c.category, "category", "", "")
	fs.StringVar(&c.category, "c", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
	fs.BoolVar(&c.overdue, "overdue", false, "")
	fs.StringVar(&c.sortBy, "sort", "", "")
	fs.BoolVar(&c.asc, "asc", false, "")
}

// criteria converts the flags, rejecting unknown enumeration values.
func (c *criteriaFlags) criteria(extraKeyword []string) (service.Criteria, error) {
	crit := service.DefaultCriteria()

	kw := c.keyword
	if kw == "" {
		kw = strings.Join(extraKeyword, " ")
	}
	crit.Filter.Keyword = strings.TrimSpace(kw)
	crit.Filter.OverdueOnly = c.overdue

	var err error
	if c.category != "" {
		if crit.Filter.Category, err = service.ParseCategory(c.category); err != nil {
			return crit, &service.ValidationError{Field: "category", Message: err.Error()}
		}
	}
	if c.priority != "" {
		if crit.Filter.Priority, err = service.ParsePriority(c.priority); err != nil {
			return crit, &service.ValidationError{Field: "priority", Message: err.Error()}
		}
	}
	if c.status != "" {
		if crit.Filter.Status, err = service.ParseStatus(c.status); err != nil {
			return crit, &service.ValidationError{Field: "status", Message: err.Error()}
		}
	}
	if c.sortBy != "" {
		if crit.Sort.Key, err = service.ParseSortKey(c.sortBy); err != nil {
			return crit, &service.ValidationError{Field: "sort", Message: err.Error()}
		}
	}
	crit.Sort.Ascending = c.asc
	return crit, nil
}
