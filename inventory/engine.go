package inventory

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"

	"bodega-backend/storage"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Errores del motor de inventario
var (
	ErrMissingFields        = errors.New("recurso y categoría son obligatorios")
	ErrRecordNotFound       = errors.New("recurso no encontrado")
	ErrConfirmationRequired = errors.New("la eliminación requiere confirmación")
)

// Engine es el motor de la tabla de inventario: posee la colección
// ordenada de registros, el registro de categorías y el estado de vista
// (filtro, orden y página), y refleja cada mutación en el almacén
// durable. Todas las operaciones son síncronas y atómicas; los errores
// del almacén se registran y la sesión sigue funcionando en memoria.
type Engine struct {
	mutex    sync.Mutex
	store    storage.Store
	sheets   SheetWriter
	collator *collate.Collator

	records    []Record
	categories []string

	filter  Filter
	spec    idSpec
	sortKey SortKey
	sortAsc bool
	page    int

	// lastID es la marca de agua de ids asignados: no baja al eliminar,
	// así un id nunca se reutiliza aunque se elimine el máximo
	lastID int
}

// New crea el motor sobre el almacén durable dado. El escritor de hojas
// de cálculo es una capacidad opcional y puede ser nil.
func New(store storage.Store, sheets SheetWriter) *Engine {
	return &Engine{
		store:    store,
		sheets:   sheets,
		collator: collate.New(language.Spanish, collate.IgnoreCase),
		page:     1,
	}
}

// Bootstrap carga la colección desde el almacén durable. Si el almacén
// está vacío adopta y persiste los registros semilla. El registro de
// categorías se deriva de los registros cuando no existe.
func (e *Engine) Bootstrap(seed []Record) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.records = append([]Record(nil), seed...)
	if raw, ok, err := e.store.Get(InventoryKey); err != nil {
		log.Printf("No se pudo leer el inventario almacenado: %v", err)
	} else if ok {
		var stored []Record
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			log.Printf("Snapshot de inventario ilegible, se usa la semilla: %v", err)
		} else if len(stored) > 0 {
			e.records = stored
		}
	}

	e.categories = nil
	if raw, ok, err := e.store.Get(CategoriesKey); err != nil {
		log.Printf("No se pudo leer el registro de categorías: %v", err)
	} else if ok {
		var stored []string
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			log.Printf("Registro de categorías ilegible: %v", err)
		} else {
			e.categories = stored
		}
	}
	if len(e.categories) == 0 {
		e.categories = e.deriveCategoriesLocked()
	}
	e.persistCategoriesLocked()

	e.lastID = 0
	for _, record := range e.records {
		if record.ID > e.lastID {
			e.lastID = record.ID
		}
	}

	e.filter = Filter{}
	e.spec = idSpec{}
	e.sortKey = SortNone
	e.page = 1
	e.refreshLocked(true)
	e.persistLocked()
}

// Add incorpora un nuevo registro a la colección. Recurso y categoría
// son obligatorios; el id asignado es max(ids)+1 y nunca se reutiliza.
// La página del llamador se conserva mientras siga dentro de rango.
func (e *Engine) Add(draft Draft) (Record, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	name := strings.TrimSpace(draft.Name)
	category := strings.TrimSpace(draft.Category)
	if name == "" || category == "" {
		return Record{}, ErrMissingFields
	}

	record := Record{
		ID:       e.nextIDLocked(),
		Name:     name,
		Category: category,
		Quantity: parseQuantity(draft.Quantity),
		Price:    parsePrice(draft.Price),
		Photo:    draft.Photo,
		Note:     strings.TrimSpace(draft.Note),
	}

	e.records = append(e.records, record)
	e.registerCategoryLocked(category)
	e.refreshLocked(false)
	e.persistLocked()

	record.Matches = e.filter.matches(e.spec, record)
	return record, nil
}

// Edit sobreescribe los campos del registro indicado; el id es
// inmutable. Una foto vacía conserva la foto existente. Los campos
// numéricos inválidos se coaccionan a 0, nunca se rechazan.
func (e *Engine) Edit(id int, draft Draft) (Record, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	index := e.indexOfLocked(id)
	if index < 0 {
		return Record{}, ErrRecordNotFound
	}

	record := &e.records[index]
	record.Name = strings.TrimSpace(draft.Name)
	record.Category = strings.TrimSpace(draft.Category)
	record.Quantity = parseQuantity(draft.Quantity)
	record.Price = parsePrice(draft.Price)
	record.Note = strings.TrimSpace(draft.Note)
	if draft.Photo != "" {
		record.Photo = draft.Photo
	}

	e.refreshLocked(false)
	e.persistLocked()
	return e.records[e.indexOfLocked(id)], nil
}

// Delete elimina el registro indicado. Es irreversible, por lo que
// exige confirmación explícita; sin ella no toca el estado.
func (e *Engine) Delete(id int, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	index := e.indexOfLocked(id)
	if index < 0 {
		return ErrRecordNotFound
	}

	e.records = append(e.records[:index], e.records[index+1:]...)
	e.refreshLocked(false)
	e.persistLocked()
	return nil
}

// SetFilter aplica un nuevo criterio de visibilidad. Por defecto vuelve
// a la página 1; resetPage=false conserva la página cuando sigue siendo
// válida (se usa al reaplicar el filtro tras una edición).
func (e *Engine) SetFilter(filter Filter, resetPage bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.filter = filter
	e.spec = parseIDSpec(filter.IDSpec)
	e.refreshLocked(resetPage)
	e.persistLocked()
}

// SetSort ordena la colección por la clave dada. SortNone no reordena.
// El cambio de orden no altera la página actual.
func (e *Engine) SetSort(key SortKey, ascending bool) {
	if key == SortNone {
		return
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.sortKey = key
	e.sortAsc = ascending
	e.applySortLocked()
	e.persistLocked()
}

// GotoPage mueve el cursor de página en delta, acotado a
// [1, totalPages], y devuelve la página resultante.
func (e *Engine) GotoPage(delta int) int {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.page += delta
	e.clampPageLocked()
	return e.page
}

// ApplyCategoryPreset consume la señal de categoría preseleccionada
// dejada por la vista de categorías: se lee una sola vez, fija el filtro
// de categoría y se borra del almacén.
func (e *Engine) ApplyCategoryPreset() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	preset, ok, err := e.store.Get(CategoryPresetKey)
	if err != nil {
		log.Printf("No se pudo leer la categoría preseleccionada: %v", err)
		return false
	}
	if !ok || preset == "" {
		return false
	}

	e.filter.Category = preset
	e.spec = parseIDSpec(e.filter.IDSpec)
	e.refreshLocked(true)
	if err := e.store.Remove(CategoryPresetKey); err != nil {
		log.Printf("No se pudo borrar la categoría preseleccionada: %v", err)
	}
	e.persistLocked()
	return true
}

// Suggestions calcula las sugerencias de autocompletado para el filtro
// de recurso: nombres distintos que contienen el texto, ordenados según
// la colación española, con un tope de 12. Textos de menos de dos
// caracteres no producen sugerencias.
func (e *Engine) Suggestions(input string) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if len([]rune(input)) < 2 {
		return nil
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	seen := make(map[string]struct{})
	var names []string
	for _, record := range e.records {
		if _, dup := seen[record.Name]; dup {
			continue
		}
		seen[record.Name] = struct{}{}
		if strings.Contains(strings.ToLower(record.Name), input) {
			names = append(names, record.Name)
		}
	}

	e.collator.SortStrings(names)
	if len(names) > 12 {
		names = names[:12]
	}
	return names
}

// View es la proyección de la tabla que consumen los renderizadores
type View struct {
	Records      []Record `json:"registros"`
	Page         int      `json:"pagina"`
	TotalPages   int      `json:"total_paginas"`
	VisibleCount int      `json:"total_visibles"`
	Filter       Filter   `json:"filtros"`
	Sort         string   `json:"orden,omitempty"`
}

// View devuelve la ventana visible actual junto con el estado de vista
func (e *Engine) View() View {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	visible := e.visibleLocked()
	sortCriteria := ""
	if e.sortKey != SortNone {
		direction := "desc"
		if e.sortAsc {
			direction = "asc"
		}
		sortCriteria = string(e.sortKey) + "-" + direction
	}

	return View{
		Records:      e.pageSliceLocked(visible),
		Page:         e.page,
		TotalPages:   totalPages(len(visible)),
		VisibleCount: len(visible),
		Filter:       e.filter,
		Sort:         sortCriteria,
	}
}

// Records devuelve una copia de la colección completa en su orden actual
func (e *Engine) Records() []Record {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return append([]Record(nil), e.records...)
}

// Categories devuelve una copia del registro de categorías
func (e *Engine) Categories() []string {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return append([]string(nil), e.categories...)
}

// Visible devuelve los registros que pasan el filtro actual, en el
// orden de presentación vigente y sin paginar
func (e *Engine) Visible() []Record {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.visibleLocked()
}

// PageRecords devuelve la ventana de la página actual sobre lo visible
func (e *Engine) PageRecords() []Record {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.pageSliceLocked(e.visibleLocked())
}

// Page devuelve la página actual (con base 1)
func (e *Engine) Page() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.page
}

// TotalPages devuelve el total de páginas del conjunto visible
func (e *Engine) TotalPages() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return totalPages(len(e.visibleLocked()))
}

// RegisterCategory agrega una categoría al registro si aún no existe.
// La comparación ignora mayúsculas y se conserva la grafía original de
// la primera inserción.
func (e *Engine) RegisterCategory(name string) bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.registerCategoryLocked(name)
}

func (e *Engine) registerCategoryLocked(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	normalized := strings.ToLower(name)
	for _, existing := range e.categories {
		if strings.ToLower(existing) == normalized {
			return false
		}
	}

	e.categories = append(e.categories, name)
	e.persistCategoriesLocked()
	return true
}

func (e *Engine) deriveCategoriesLocked() []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, record := range e.records {
		category := strings.TrimSpace(record.Category)
		if category == "" {
			continue
		}
		normalized := strings.ToLower(category)
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		categories = append(categories, category)
	}
	e.collator.SortStrings(categories)
	return categories
}

// nextIDLocked asigna max(ids asignados, 0)+1 sin reutilizar jamás un
// id, aunque el registro con el id máximo haya sido eliminado
func (e *Engine) nextIDLocked() int {
	for _, record := range e.records {
		if record.ID > e.lastID {
			e.lastID = record.ID
		}
	}
	e.lastID++
	return e.lastID
}

func (e *Engine) indexOfLocked(id int) int {
	for i, record := range e.records {
		if record.ID == id {
			return i
		}
	}
	return -1
}

// refreshLocked recalcula las marcas de visibilidad, reaplica el orden
// vigente y acota la página al nuevo total
func (e *Engine) refreshLocked(resetPage bool) {
	for i := range e.records {
		e.records[i].Matches = e.filter.matches(e.spec, e.records[i])
	}
	e.applySortLocked()
	if resetPage {
		e.page = 1
	}
	e.clampPageLocked()
}

func (e *Engine) clampPageLocked() {
	total := totalPages(len(e.visibleLocked()))
	if e.page > total {
		e.page = total
	}
	if e.page < 1 {
		e.page = 1
	}
}

func (e *Engine) visibleLocked() []Record {
	var visible []Record
	for _, record := range e.records {
		if record.Matches {
			visible = append(visible, record)
		}
	}
	return visible
}

func (e *Engine) pageSliceLocked(visible []Record) []Record {
	start := (e.page - 1) * PageSize
	if start >= len(visible) {
		return nil
	}
	end := start + PageSize
	if end > len(visible) {
		end = len(visible)
	}
	return append([]Record(nil), visible[start:end]...)
}

func totalPages(visibleCount int) int {
	total := (visibleCount + PageSize - 1) / PageSize
	if total < 1 {
		return 1
	}
	return total
}

// persistLocked refleja la colección completa en el almacén durable.
// Un fallo de almacenamiento no es fatal: se registra y la vista en
// memoria sigue funcionando durante la sesión.
func (e *Engine) persistLocked() {
	data, err := json.Marshal(e.records)
	if err != nil {
		log.Printf("No se pudo serializar el inventario: %v", err)
		return
	}
	if err := e.store.Set(InventoryKey, string(data)); err != nil {
		log.Printf("No se pudo persistir el inventario: %v", err)
	}
}

func (e *Engine) persistCategoriesLocked() {
	data, err := json.Marshal(e.categories)
	if err != nil {
		log.Printf("No se pudo serializar las categorías: %v", err)
		return
	}
	if err := e.store.Set(CategoriesKey, string(data)); err != nil {
		log.Printf("No se pudo persistir las categorías: %v", err)
	}
}
