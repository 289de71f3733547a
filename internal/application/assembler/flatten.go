package assembler

import (
	"fmt"

	"github.com/ozzus/flypy/internal/domain/models"
)

func emptyBlock() models.FlightBlock {
	return models.FlightBlock{
		Legs:     []models.LegView{},
		Layovers: []models.LayoverView{},
	}
}

func flattenJourney(j models.Journey) models.FlightBlock {
	legs := j.Legs()
	layovers := j.Layovers()

	block := models.FlightBlock{
		Legs:     make([]models.LegView, 0, len(legs)),
		Layovers: make([]models.LayoverView, 0, len(layovers)),
	}
	for _, leg := range legs {
		block.Legs = append(block.Legs, flattenLeg(leg))
	}
	for _, layover := range layovers {
		block.Layovers = append(block.Layovers, flattenLayover(layover))
	}

	return block
}

func flattenLeg(leg models.Leg) models.LegView {
	origin, dest := leg.Origin(), leg.Dest()
	return models.LegView{
		OriginCode: origin.Code,
		OriginName: origin.Name,
		OriginCity: origin.City,
		DestCode:   dest.Code,
		DestName:   dest.Name,
		DestCity:   dest.City,
		DeptTime:   leg.DeptTime(),
		ArrTime:    leg.ArrTime(),
		Duration:   leg.Duration(),
		Flight:     flightLabel(leg.Flight()),
		Aircraft:   aircraftLabel(leg.Aircraft()),
	}
}

func flattenLayover(l models.Layover) models.LayoverView {
	return models.LayoverView{
		AirportName: l.Airport().Name,
		AirportCode: l.Airport().Code,
		Duration:    l.Duration(),
	}
}

func flightLabel(f models.Flight) string {
	return fmt.Sprintf("%s %s%s", f.Name, f.Carrier, f.Number)
}

func aircraftLabel(a models.Aircraft) string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Code)
}
