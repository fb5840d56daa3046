package lands

import (
	"testing"

	"naturesbasket/models"
)

func TestLandUpdateFields(t *testing.T) {
	fields := landUpdateFields(models.Land{
		Name:     "North plot",
		AreaUnit: "acre",
		Area:     2.5,
	})

	if fields["name"] != "North plot" {
		t.Errorf("name = %v", fields["name"])
	}
	if fields["areaUnit"] != "acre" {
		t.Errorf("areaUnit = %v, want acre", fields["areaUnit"])
	}
	if fields["area"] != 2.5 {
		t.Errorf("area = %v", fields["area"])
	}
	if _, ok := fields["location"]; ok {
		t.Error("unset location should not be written")
	}
	if _, ok := fields["soilType"]; ok {
		t.Error("unset soilType should not be written")
	}
}

func TestLandUpdateFieldsEmptyInput(t *testing.T) {
	if fields := landUpdateFields(models.Land{}); len(fields) != 0 {
		t.Errorf("empty edit produced fields: %v", fields)
	}
}

func TestLandUpdateFieldsIgnoresNonPositiveArea(t *testing.T) {
	if fields := landUpdateFields(models.Land{Area: -1}); len(fields) != 0 {
		t.Errorf("negative area produced fields: %v", fields)
	}
}
