package payload

import "github.com/BearBump/ScanBox/internal/models"

type fieldType int

const (
	fieldString fieldType = iota
	fieldInt
	fieldBool
)

// fieldSpec связывает каноничное поле с его алиасами.
// Добавление алиаса — это правка данных, а не новой ветки кода.
type fieldSpec struct {
	keys []string // lowercase, primary name first
	typ  fieldType
	only models.Kind // empty = both kinds

	setString func(*TagPayload, string)
	setInt    func(*TagPayload, int64)
	setBool   func(*TagPayload, bool)
}

var fields = []fieldSpec{
	{keys: []string{"name"}, typ: fieldString,
		setString: func(p *TagPayload, v string) { p.Name = v }},
	{keys: []string{"code"}, typ: fieldString,
		setString: func(p *TagPayload, v string) { p.Code = v }},
	{keys: []string{"description", "desc"}, typ: fieldString,
		setString: func(p *TagPayload, v string) { p.Description = v }},
	{keys: []string{"category", "cat"}, typ: fieldString,
		setString: func(p *TagPayload, v string) { p.Category = v }},
	{keys: []string{"unit"}, typ: fieldString,
		setString: func(p *TagPayload, v string) { p.Unit = v }},
	{keys: []string{"tags"}, typ: fieldString,
		setString: func(p *TagPayload, v string) { p.Tags = v }},
	{keys: []string{"notes"}, typ: fieldString,
		setString: func(p *TagPayload, v string) { p.Notes = v }},

	{keys: []string{"parentid"}, typ: fieldInt, only: models.KindLocation,
		setInt: func(p *TagPayload, v int64) { p.ParentID = &v }},
	{keys: []string{"parentname", "parent"}, typ: fieldString, only: models.KindLocation,
		setString: func(p *TagPayload, v string) { p.ParentName = v }},
	{keys: []string{"maxitems"}, typ: fieldInt, only: models.KindLocation,
		setInt: func(p *TagPayload, v int64) { p.MaxItems = &v }},
	{keys: []string{"maxweight", "maxwt"}, typ: fieldInt, only: models.KindLocation,
		setInt: func(p *TagPayload, v int64) { p.MaxWeight = &v }},
	{keys: []string{"weightunit", "wtunit"}, typ: fieldString, only: models.KindLocation,
		setString: func(p *TagPayload, v string) { p.WeightUnit = v }},
	{keys: []string{"allowedcategories", "allowcat"}, typ: fieldString, only: models.KindLocation,
		setString: func(p *TagPayload, v string) { p.AllowedCategories = v }},

	{keys: []string{"sku"}, typ: fieldString, only: models.KindItem,
		setString: func(p *TagPayload, v string) { p.SKU = v }},
	{keys: []string{"quantity", "qty"}, typ: fieldInt, only: models.KindItem,
		setInt: func(p *TagPayload, v int64) { p.Quantity = &v }},
	{keys: []string{"minquantity", "minqty"}, typ: fieldInt, only: models.KindItem,
		setInt: func(p *TagPayload, v int64) { p.MinQuantity = &v }},
	{keys: []string{"locationid", "locid"}, typ: fieldInt, only: models.KindItem,
		setInt: func(p *TagPayload, v int64) { p.LocationID = &v }},
	{keys: []string{"locationname", "loc"}, typ: fieldString, only: models.KindItem,
		setString: func(p *TagPayload, v string) { p.LocationName = v }},
	{keys: []string{"manageinventory", "manage", "inv"}, typ: fieldBool, only: models.KindItem,
		setBool: func(p *TagPayload, v bool) { p.ManageInventory = &v }},
}
