package sumonet

// VehicleClass is a single entry of the SUMO vClass vocabulary.
type VehicleClass uint16

const (
	CLASS_PRIVATE = VehicleClass(iota + 1)
	CLASS_EMERGENCY
	CLASS_AUTHORITY
	CLASS_ARMY
	CLASS_VIP
	CLASS_PEDESTRIAN
	CLASS_PASSENGER
	CLASS_HOV
	CLASS_TAXI
	CLASS_BUS
	CLASS_COACH
	CLASS_DELIVERY
	CLASS_TRUCK
	CLASS_TRAILER
	CLASS_MOTORCYCLE
	CLASS_MOPED
	CLASS_BICYCLE
	CLASS_EVEHICLE
	CLASS_TRAM
	CLASS_RAIL_URBAN
	CLASS_RAIL
	CLASS_RAIL_ELECTRIC
	CLASS_RAIL_FAST
	CLASS_SHIP
	CLASS_CUSTOM1
	CLASS_CUSTOM2
	CLASS_UNDEFINED = VehicleClass(0)
)

func (iotaIdx VehicleClass) String() string {
	return [...]string{"undefined", "private", "emergency", "authority", "army", "vip", "pedestrian", "passenger", "hov", "taxi", "bus", "coach", "delivery", "truck", "trailer", "motorcycle", "moped", "bicycle", "evehicle", "tram", "rail_urban", "rail", "rail_electric", "rail_fast", "ship", "custom1", "custom2"}[iotaIdx]
}

var vehicleClassByName = map[string]VehicleClass{
	"private":       CLASS_PRIVATE,
	"emergency":     CLASS_EMERGENCY,
	"authority":     CLASS_AUTHORITY,
	"army":          CLASS_ARMY,
	"vip":           CLASS_VIP,
	"pedestrian":    CLASS_PEDESTRIAN,
	"passenger":     CLASS_PASSENGER,
	"hov":           CLASS_HOV,
	"taxi":          CLASS_TAXI,
	"bus":           CLASS_BUS,
	"coach":         CLASS_COACH,
	"delivery":      CLASS_DELIVERY,
	"truck":         CLASS_TRUCK,
	"trailer":       CLASS_TRAILER,
	"motorcycle":    CLASS_MOTORCYCLE,
	"moped":         CLASS_MOPED,
	"bicycle":       CLASS_BICYCLE,
	"evehicle":      CLASS_EVEHICLE,
	"tram":          CLASS_TRAM,
	"rail_urban":    CLASS_RAIL_URBAN,
	"rail":          CLASS_RAIL,
	"rail_electric": CLASS_RAIL_ELECTRIC,
	"rail_fast":     CLASS_RAIL_FAST,
	"ship":          CLASS_SHIP,
	"custom1":       CLASS_CUSTOM1,
	"custom2":       CLASS_CUSTOM2,
}

func (iotaIdx VehicleClass) bit() uint32 {
	if iotaIdx == CLASS_UNDEFINED {
		return 0
	}
	return uint32(1) << (uint32(iotaIdx) - 1)
}
