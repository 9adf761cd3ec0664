package pantry

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"meal-planner/domain"
	"meal-planner/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePantryRepo struct {
	items  []*entities.PantryItem
	nextID uint
}

func (f *fakePantryRepo) GetAll(_ context.Context, location, category string) ([]*entities.PantryItem, error) {
	var out []*entities.PantryItem
	for _, item := range f.items {
		if location != "" && (item.Location == nil || *item.Location != location) {
			continue
		}
		if category != "" && (item.Category == nil || *item.Category != category) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakePantryRepo) GetByID(_ context.Context, id uint) (*entities.PantryItem, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePantryRepo) GetByBarcode(_ context.Context, barcode string) (*entities.PantryItem, error) {
	for _, item := range f.items {
		if item.Barcode != nil && *item.Barcode == barcode {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakePantryRepo) GetByNameAndBrand(_ context.Context, name string, brand *string) (*entities.PantryItem, error) {
	for _, item := range f.items {
		if item.Name != name {
			continue
		}
		if brand == nil {
			if item.Brand == nil {
				return item, nil
			}
			continue
		}
		if item.Brand == nil || *item.Brand == *brand {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakePantryRepo) Add(_ context.Context, item *entities.PantryItem) error {
	f.nextID++
	item.ID = f.nextID
	f.items = append(f.items, item)
	return nil
}

func (f *fakePantryRepo) Update(_ context.Context, item *entities.PantryItem) error {
	for i, existing := range f.items {
		if existing.ID == item.ID {
			f.items[i] = item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePantryRepo) Delete(_ context.Context, id uint) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakePantryRepo) DeleteMany(_ context.Context, ids []uint) (int64, error) {
	var deleted int64
	for _, id := range ids {
		for i, item := range f.items {
			if item.ID == id {
				f.items = append(f.items[:i], f.items[i+1:]...)
				deleted++
				break
			}
		}
	}
	return deleted, nil
}

func (f *fakePantryRepo) GetExpiringBetween(_ context.Context, from, to string) ([]*entities.PantryItem, error) {
	var out []*entities.PantryItem
	for _, item := range f.items {
		if item.BestBy != nil && *item.BestBy >= from && *item.BestBy <= to {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakePantryRepo) GetLocations(_ context.Context) ([]string, error)  { return nil, nil }
func (f *fakePantryRepo) GetCategories(_ context.Context) ([]string, error) { return nil, nil }

type fakeStoreService struct {
	ids     map[string]uint
	created []string
}

func (f *fakeStoreService) GetStores(_ context.Context) ([]domain.StoreResponse, error) {
	return nil, nil
}
func (f *fakeStoreService) AddStore(_ context.Context, _ domain.StoreRequest) (domain.StoreResponse, error) {
	return domain.StoreResponse{}, nil
}
func (f *fakeStoreService) UpdateStore(_ context.Context, _ uint, _ domain.StoreRequest) error {
	return nil
}
func (f *fakeStoreService) DeleteStore(_ context.Context, _ uint) error { return nil }

func (f *fakeStoreService) GetOrCreate(_ context.Context, name string) (*uint, error) {
	if name == "" {
		return nil, nil
	}
	if f.ids == nil {
		f.ids = map[string]uint{}
	}
	id, ok := f.ids[name]
	if !ok {
		id = uint(len(f.ids) + 1)
		f.ids[name] = id
		f.created = append(f.created, name)
	}
	return &id, nil
}

func ptr[T any](v T) *T { return &v }

// csvFileHeader wraps raw CSV content in a multipart file header the way
// fiber hands it to the service.
func csvFileHeader(t *testing.T, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "pantry.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	require.NotEmpty(t, form.File["file"])
	return form.File["file"][0]
}

func TestAddItemRejectsNegativeQuantity(t *testing.T) {
	svc := NewPantryService(&fakePantryRepo{}, &fakeStoreService{})
	_, err := svc.AddItem(context.Background(), domain.PantryItemRequest{Name: "Rice", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestGetItemNotFound(t *testing.T) {
	svc := NewPantryService(&fakePantryRepo{}, &fakeStoreService{})
	_, err := svc.GetItem(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrPantryItemNotFound)
}

func TestImportCSVInsertsRows(t *testing.T) {
	repo := &fakePantryRepo{}
	stores := &fakeStoreService{}
	svc := NewPantryService(repo, stores)

	// Leading BOM the way PantryChecker exports it.
	csvData := "\uFEFFName,Brand,Barcode,Category,Location,Quantity,Unit,Stocked,Best By,Store,Product Notes,Item Notes\n" +
		"Black Beans,Goya,0041331124235,Canned,Pantry,3,cans,2026-08-01,2027-08-01,Safeway,Low sodium,\n" +
		"Rice,,,,Pantry,,,,,,,\n"

	res, err := svc.ImportCSV(context.Background(), csvFileHeader(t, csvData))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 0, res.Updated)
	require.Len(t, repo.items, 2)

	beans := repo.items[0]
	assert.Equal(t, "Black Beans", beans.Name)
	assert.Equal(t, "Goya", *beans.Brand)
	assert.Equal(t, "0041331124235", *beans.Barcode)
	assert.Equal(t, 3.0, beans.Quantity)
	assert.Equal(t, "cans", *beans.Unit)
	assert.Equal(t, "2027-08-01", *beans.BestBy)
	require.NotNil(t, beans.PreferredStoreID)
	assert.Equal(t, []string{"Safeway"}, stores.created)
	assert.Equal(t, "Low sodium", *beans.ProductNotes)
	assert.Nil(t, beans.ItemNotes)

	// Missing quantity defaults to 1; empty optionals stay nil.
	rice := repo.items[1]
	assert.Equal(t, 1.0, rice.Quantity)
	assert.Nil(t, rice.Brand)
	assert.Nil(t, rice.Barcode)
	assert.Nil(t, rice.PreferredStoreID)
}

func TestImportCSVUpdatesByBarcode(t *testing.T) {
	repo := &fakePantryRepo{}
	require.NoError(t, repo.Add(context.Background(), &entities.PantryItem{
		Name:     "Old Beans",
		Barcode:  ptr("0041331124235"),
		Quantity: 1,
	}))
	svc := NewPantryService(repo, &fakeStoreService{})

	csvData := "Name,Brand,Barcode,Quantity\n" +
		"Black Beans,Goya,0041331124235,5\n"

	res, err := svc.ImportCSV(context.Background(), csvFileHeader(t, csvData))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, repo.items, 1)
	assert.Equal(t, "Black Beans", repo.items[0].Name)
	assert.Equal(t, 5.0, repo.items[0].Quantity)
}

func TestImportCSVUpdatesByNameAndBrand(t *testing.T) {
	repo := &fakePantryRepo{}
	require.NoError(t, repo.Add(context.Background(), &entities.PantryItem{
		Name:     "Rice",
		Brand:    ptr("Lundberg"),
		Quantity: 1,
	}))
	svc := NewPantryService(repo, &fakeStoreService{})

	csvData := "Name,Brand,Quantity\n" +
		"Rice,Lundberg,2\n" +
		"Rice,Other Brand,4\n"

	res, err := svc.ImportCSV(context.Background(), csvFileHeader(t, csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, repo.items, 2)
	assert.Equal(t, 2.0, repo.items[0].Quantity)
	assert.Equal(t, "Other Brand", *repo.items[1].Brand)
}

func TestImportCSVSkipsNamelessRows(t *testing.T) {
	repo := &fakePantryRepo{}
	svc := NewPantryService(repo, &fakeStoreService{})

	csvData := "Name,Quantity\n" +
		",3\n" +
		"Rice,2\n"

	res, err := svc.ImportCSV(context.Background(), csvFileHeader(t, csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	require.Len(t, repo.items, 1)
	assert.Equal(t, "Rice", repo.items[0].Name)
}

func TestImportCSVEmptyFile(t *testing.T) {
	svc := NewPantryService(&fakePantryRepo{}, &fakeStoreService{})
	_, err := svc.ImportCSV(context.Background(), csvFileHeader(t, ""))
	assert.ErrorIs(t, err, domain.ErrEmptyCSV)
}

func TestDeleteItems(t *testing.T) {
	repo := &fakePantryRepo{}
	require.NoError(t, repo.Add(context.Background(), &entities.PantryItem{Name: "A", Quantity: 1}))
	require.NoError(t, repo.Add(context.Background(), &entities.PantryItem{Name: "B", Quantity: 1}))
	svc := NewPantryService(repo, &fakeStoreService{})

	deleted, err := svc.DeleteItems(context.Background(), []uint{1, 2, 99})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Empty(t, repo.items)

	deleted, err = svc.DeleteItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
