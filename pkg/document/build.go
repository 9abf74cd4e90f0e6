// SPDX-License-Identifier: MPL-2.0

package document

import (
	"errors"

	"github.com/persephone/persephone/pkg/eagri"
	"github.com/persephone/persephone/pkg/xmltree"
)

// BuildRequest renders r as a <Request> document. Codes are validated first;
// an invalid request yields the joined validation errors and no output.
func BuildRequest(r eagri.Request) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	root, err := requestTree(r)
	if err != nil {
		return "", err
	}
	return render(root)
}

// BuildResponse renders r as a <Response> document.
func BuildResponse(r eagri.Response) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	root := xmltree.New("Response")
	w := &elementWriter{}
	w.add(root, "GuidPodani", text(r.GUID.String()))
	if w.err != nil {
		return "", w.err
	}
	return render(root)
}

func render(root *xmltree.Element) (string, error) {
	data, err := xmltree.Marshal(root)
	if err != nil {
		var textErr *xmltree.InvalidTextError
		if errors.As(err, &textErr) {
			return "", &EncodingError{Element: textErr.Element, Err: err}
		}
		return "", &SerializationError{Err: err}
	}
	return string(data), nil
}

func requestTree(r eagri.Request) (*xmltree.Element, error) {
	root := xmltree.New("Request")
	w := &elementWriter{}

	w.add(root, "Typ", code(r.Type))
	w.add(root, "ObdobiOd", date(r.PeriodFrom))
	w.add(root, "ObdobiDo", date(r.PeriodTo))
	w.add(root, "HospRok", optInt(r.AgriculturalYear))
	w.add(root, "RezimVolani", code(r.CallMode))

	if len(r.Scopes) > 0 {
		scopes := root.AddChild("RozsahDat")
		for _, s := range r.Scopes {
			w.add(scopes, "Kod", code(s.Code))
		}
	}
	if len(r.Fields) > 0 {
		fields := root.AddChild("Osevy")
		for _, f := range r.Fields {
			w.fieldRecord(fields.AddChild("Osev"), f)
		}
	}
	if len(r.Applications) > 0 {
		apps := root.AddChild("Aplikace")
		for _, a := range r.Applications {
			w.application(apps.AddChild("Aplikace"), a)
		}
	}
	if len(r.Harvests) > 0 {
		harvests := root.AddChild("Sklizne")
		for _, h := range r.Harvests {
			w.harvest(harvests.AddChild("Sklizen"), h)
		}
	}
	if len(r.Grazing) > 0 {
		grazing := root.AddChild("Pastvy")
		for _, g := range r.Grazing {
			w.grazing(grazing.AddChild("Pastva"), g)
		}
	}

	if w.err != nil {
		return nil, w.err
	}
	return root, nil
}

func (w *elementWriter) fieldRecord(e *xmltree.Element, f eagri.FieldRecord) {
	w.add(e, "Zkod", text(f.Code))
	w.add(e, "Ctverec", text(f.GridSquare))
	w.add(e, "IdPozemek", text(f.ParcelID))
	w.add(e, "NazevPozemek", text(f.ParcelName))
	w.add(e, "PlatnostOd", date(f.ValidFrom))
	w.add(e, "PlatnostDo", date(f.ValidTo))

	// Vymery is written even when empty.
	areas := e.AddChild("Vymery")
	for _, m := range f.Areas {
		area := areas.AddChild("Vymera")
		w.add(area, "Vymera", decimal(m.Area))
		w.add(area, "PlatnostOd", date(m.ValidFrom))
		w.add(area, "PlatnostDo", date(m.ValidTo))
	}

	for _, c := range f.Cultivations {
		w.cultivation(e.AddChild("Pestovani"), c)
	}
}

func (w *elementWriter) cultivation(e *xmltree.Element, c eagri.Cultivation) {
	w.add(e, "IdPestovani", text(c.ID))
	w.add(e, "IdPlodina", integer(c.CropID))
	w.add(e, "IdUzitkovySmer", optInt(c.UsageDirectionID))
	w.add(e, "Viceleta", boolean(c.MultiYear))
	w.add(e, "HospRok", optInt(c.AgriculturalYear))
	w.add(e, "TypPlodiny", code(c.CropType))
	w.add(e, "ZahajeniPestovani", date(c.StartedOn))
	w.add(e, "UkonceniPestovani", date(c.EndedOn))
	w.add(e, "PlatnostOd", date(c.ValidFrom))
	w.add(e, "PlatnostDo", date(c.ValidTo))
}

func (w *elementWriter) application(e *xmltree.Element, a eagri.ApplicationRecord) {
	w.add(e, "Typ", code(a.Type))
	w.add(e, "DatAplikaceZahajeni", date(a.StartedOn))
	w.add(e, "DatZapraveniUkonceni", date(a.IncorporatedOn))
	w.add(e, "DobaZapraveni", code(a.IncorporationTime))
	w.add(e, "IdPestovani", text(a.CultivationID))
	w.add(e, "IdPozemek", text(a.ParcelID))
	w.add(e, "IdPlodina", integer(a.CropID))
	w.add(e, "VymeraPlodiny", decimal(a.CropArea))
	w.add(e, "VymeraAplikace", decimal(a.AppliedArea))
	w.add(e, "MnozstviCelkem", decimal(a.TotalAmount))
	w.add(e, "MnozstviHa", decimal(a.AmountPerHectare))
	w.add(e, "MernaJednotka", code(a.Unit))
	w.add(e, "IdHnojivo", optInt(a.FertilizerID))
	w.add(e, "NazevHnojivo", text(a.FertilizerName))
	w.add(e, "KategorieN", optInt(a.NitrogenCategory))
	w.add(e, "DruhHnojiva", optInt(a.FertilizerKind))
	w.add(e, "TypoveIdHnojivo", optInt(a.FertilizerTypeID))
	w.add(e, "MetodaZivin", code(a.NutrientMethod))
	w.add(e, "PrivodN", decimal(a.SupplyN))
	w.add(e, "PrivodP", decimal(a.SupplyP))
	w.add(e, "PrivodK", decimal(a.SupplyK))
	w.add(e, "PrivodMg", decimal(a.SupplyMg))
	w.add(e, "PrivodCa", decimal(a.SupplyCa))
	w.add(e, "PrivodS", decimal(a.SupplyS))
	w.add(e, "RozkladSlamy", optBool(a.StrawDecomposition))
}

func (w *elementWriter) harvest(e *xmltree.Element, h eagri.HarvestRecord) {
	w.add(e, "IdPestovani", text(h.CultivationID))
	w.add(e, "IdProdukt", integer(h.ProductID))
	w.add(e, "TypProduktu", code(h.ProductType))
	w.add(e, "HospRok", integer(h.AgriculturalYear))
	w.add(e, "VymeraSklizne", decimal(h.HarvestedArea))
	w.add(e, "MnozstviCelkem", decimal(h.TotalAmount))
	w.add(e, "MnozstviHa", decimal(h.AmountPerHectare))
	w.add(e, "MernaJednotka", code(h.Unit))
	w.add(e, "Susina", optInt(h.DryMatter))
}

func (w *elementWriter) grazing(e *xmltree.Element, g eagri.GrazingRecord) {
	w.add(e, "IdPozemek", text(g.ParcelID))
	w.add(e, "IdDruhZvirat", text(g.AnimalSpeciesID))
	w.add(e, "IdKategorieZvirat", optInt(g.AnimalCategoryID))
	w.add(e, "VlastniKategorieZvirat", text(g.CustomCategory))
	w.add(e, "PocetKs", decimal(g.HeadCount))
	w.add(e, "PocetDJ", decimal(g.LivestockUnits))
	w.add(e, "PastvaOd", date(g.StartedOn))
	w.add(e, "PastvaDo", date(g.EndedOn))
	w.add(e, "PocetHodPastva", optInt(g.HoursPerDay))
	w.add(e, "VymeraPastvy", decimal(g.GrazedArea))
	w.add(e, "MnozstviHa", decimal(g.AmountPerHectare))
	w.add(e, "MernaJednotka", code(g.Unit))
	w.add(e, "IdHnojivo", optInt(g.FertilizerID))
	w.add(e, "NazevHnojivo", text(g.FertilizerName))
	w.add(e, "MetodaZivin", code(g.NutrientMethod))
	w.add(e, "PrivodN", decimal(g.SupplyN))
	w.add(e, "PrivodP", decimal(g.SupplyP))
	w.add(e, "PrivodK", decimal(g.SupplyK))
}
