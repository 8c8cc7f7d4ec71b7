package query

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultRecordPerPage = 10

// Page holds the optional paging parameters. Lists are unpaged unless the
// client sends one of them.
type Page struct {
	Page          string `form:"page"`
	RecordPerPage string `form:"recordPerPage"`
}

// FindOptions sorts newest first and applies skip/limit when paging was
// requested. Malformed or non-positive values fall back to defaults.
func (p Page) FindOptions() *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if p.Page == "" && p.RecordPerPage == "" {
		return opts
	}

	recordPerPage, err := strconv.Atoi(p.RecordPerPage)
	if err != nil || recordPerPage < 1 {
		recordPerPage = defaultRecordPerPage
	}
	page, err := strconv.Atoi(p.Page)
	if err != nil || page < 1 {
		page = 1
	}

	startIndex := (page - 1) * recordPerPage
	return opts.SetSkip(int64(startIndex)).SetLimit(int64(recordPerPage))
}
