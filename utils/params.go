package utils

import (
	"context"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ParsePagination reads ?page= and ?limit= and returns mongo skip/limit.
// limit is clamped to maxLimit; page starts at 1.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return (page - 1) * limit, limit
}

// PageOf returns the 1-based page implied by skip/limit.
func PageOf(skip, limit int64) int64 {
	if limit <= 0 {
		return 1
	}
	return skip/limit + 1
}

// TotalPages rounds total up to whole pages.
func TotalPages(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ParseSort maps a ?sort= value to a bson sort document, falling back to def.
func ParseSort(param string, def bson.D, allowed map[string]bson.D) bson.D {
	if s, ok := allowed[param]; ok {
		return s
	}
	return def
}

// RegexFilter builds a case-insensitive substring match on field.
func RegexFilter(field, search string) bson.M {
	return bson.M{field: bson.M{"$regex": primitive.Regex{Pattern: search, Options: "i"}}}
}

// FindAndDecode runs Find and drains the cursor into a slice, never nil.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
