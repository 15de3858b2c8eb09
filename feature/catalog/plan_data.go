package catalog

// bundledBuildPlan is the default build plan: one "name<TAB>quantity" line per order.
// Repeated names are separate orders and are summed when parsed.
const bundledBuildPlan = `10MN Afterburner II	1296
1200mm Artillery Cannon II	864
150mm Railgun II	2593
250mm Light Artillery Cannon II	2593
350mm Railgun II	864
650mm Artillery Cannon II	1296
Absolution	20
Anathema	53
Ares	53
Bustard	25
Bustard	25
Buzzard	53
Claw	53
Claymore	20
Co-Processor II	2593
Crane	25
Crow	53
Crusader	53
Crusader	53
Damage Control II	2593
Deimos	25
Dual 650mm Repeating Cannon II	864
Dual Light Beam Laser II	2593
Eagle	25
Electron Blaster Cannon II	864
Enyo	53
Eris	33
Flycatcher	33
Gleam L	1684
Gravimetric ECM II	1296
Guardian	25
Gyrostabilizer II	2593
Hail M	3160000
Hammerhead II	2022
Hammerhead II	2022
Harpy	53
Hawk	53
Heat Sink II	2593
Heavy Beam Laser II	1296
Heavy Electron Blaster II	1296
Helios	53
Heretic	33
Hound	53
Inferno Precision Cruise Missile	2105000
Inferno Rage Torpedo	2105000
Ion Blaster Cannon II	864
Ishkur	53
Jaguar	53
Kinetic Energized Membrane II	2593
Kinetic Shield Amplifier II	1296
Lachesis	25
Large Shield Booster II	1296
Layered Energized Membrane II	2593
Light Electron Blaster II	2593
Magnetic Field Stabilizer II	2593
Malediction	53
Mastodon	25
Medium Armor Repairer II	1296
Medium Cap Battery II	1296
Medium Capacitor Booster II	1296
Medium Energy Nosferatu II	1296
Medium Proton Smartbomb II	1296
Medium Shield Booster II	2593
Medium Shield Extender II	2593
Mega Beam Laser II	864
Miner II	2593
Mjolnir Fury Cruise Missile	2105000
Mobile Small Warp Disruptor II	404
Mobile Small Warp Disruptor II	404
Muninn	25
Nemesis	53
Nighthawk	20
Nova Javelin Torpedo	2105000
Nova Javelin Torpedo	2105000
Ogre II	1348
Power Diagnostic System II	2593
Praetor II	1348
Prorator	25
Prowler	25
Purifier	53
Purifier	53
Rapid Light Missile Launcher II	1296
Raptor	53
Reactor Control Unit II	2593
Remote Sensor Dampener II	1296
Remote Tracking Computer II	1296
Retribution	53
Scourge Fury Cruise Missile	2105000
Scourge Fury Light Missile	6320000
Scourge Precision Cruise Missile	2105000
Scourge Precision Light Missile	6320000
Scourge Rage Torpedo	2105000
Sensor Booster II	1296
Shield Boost Amplifier II	1296
Signal Amplifier II	2593
Signal Amplifier II	2593
Signal Amplifier II	2593
Signal Amplifier II	2593
Signal Amplifier II	2593
Skiff	25
Sleipnir	20
Small Cap Battery II	2593
Small Capacitor Booster II	2593
Small EMP Smartbomb II	2593
Small Focused Beam Laser II	2593
Small Focused Pulse Laser II	2593
Small Shield Booster II	2593
Small Shield Extender II	2593
Spike L	2105000
Spike S	6320000
Spike S	6320000
Stiletto	53
Taranis	53
Thermal Coating II	2593
Thermal Shield Hardener II	1296
Tracking Computer II	1296
Tracking Disruptor II	1296
Tracking Enhancer II	2593
Tracking Enhancer II	2593
Vagabond	25
Vengeance	53
Viator	25
Vulture	20
Wasp II	1348
Wolf	53
Zealot	25
Coherent Asteroid Mining Crystal Type A II	12642
Coherent Asteroid Mining Crystal Type A II	12642
Complex Asteroid Mining Crystal Type A II	12642
Complex Asteroid Mining Crystal Type A II	12642
Complex Asteroid Mining Crystal Type A II	12642
Simple Asteroid Mining Crystal Type A II	12642
Variegated Asteroid Mining Crystal Type A II	12642`
