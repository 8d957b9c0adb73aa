package utils

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// GetTagValue returns the value of a tag with the given key
func GetTagValue(tags []types.Tag, key string) string {
	for _, tag := range tags {
		if tag.Key != nil && *tag.Key == key {
			return SafeDeref(tag.Value)
		}
	}
	return ""
}

// GetName returns the value of the Name tag
func GetName(tags []types.Tag) string {
	return GetTagValue(tags, "Name")
}

// GetTagsMap converts a slice of tags to a map.
// A later duplicate key overwrites an earlier one.
func GetTagsMap(tags []types.Tag) map[string]string {
	result := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag.Key == nil {
			continue
		}
		result[*tag.Key] = SafeDeref(tag.Value)
	}
	return result
}

// TagValueEqualFold reports whether the tag stored under the exact key has the
// given value, ignoring case of the value only
func TagValueEqualFold(tags map[string]string, key, value string) bool {
	v, ok := tags[key]
	if !ok {
		return false
	}
	return strings.ToLower(v) == strings.ToLower(value)
}
