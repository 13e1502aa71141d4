package catalog

// questionCatalog is the CEAL-SM question catalog: 66 items across 12
// scored dimensions plus the informational GHQ block. Questionnaire order
// matters: dimension order in reports follows first appearance here.
var questionCatalog = []Item{
	{"QD1", "CT", "Carga de trabajo", "¿Su carga de trabajo se distribuye de manera desigual de modo que se le acumula el trabajo?"},
	{"QD2", "CT", "Carga de trabajo", "¿Con qué frecuencia le falta tiempo para completar sus tareas?"},
	{"QD3", "CT", "Carga de trabajo", "¿Se retrasa en la entrega de su trabajo?"},
	{"ED1", "EM", "Exigencias emocionales", "Su trabajo, ¿le coloca en situaciones emocionalmente perturbadoras?"},
	{"ED2", "EM", "Exigencias emocionales", "Como parte de su trabajo, ¿tiene que lidiar con los problemas personales de usuarios o clientes?"},
	{"HE2", "EM", "Exigencias emocionales", "Su trabajo, ¿le exige esconder sus emociones?"},
	{"DP2", "DP", "Desarrollo profesional", "¿Tiene la posibilidad de adquirir nuevos conocimientos a través de su trabajo?"},
	{"DP3", "DP", "Desarrollo profesional", "En su trabajo, ¿puede utilizar sus habilidades o experiencia?"},
	{"DP4", "DP", "Desarrollo profesional", "Su trabajo, ¿le da la oportunidad de desarrollar sus habilidades?"},
	{"PR2", "RC", "Reconocimiento y claridad de rol", "¿Recibe toda la información que necesita para hacer bien su trabajo?"},
	{"RE1", "RC", "Reconocimiento y claridad de rol", "Su trabajo, ¿es reconocido y valorado por sus superiores?"},
	{"RE2", "RC", "Reconocimiento y claridad de rol", "En su trabajo, ¿es respetado por sus superiores?"},
	{"RE3", "RC", "Reconocimiento y claridad de rol", "En su trabajo, ¿es tratado de forma justa?"},
	{"MW1", "RC", "Reconocimiento y claridad de rol", "Su trabajo, ¿tiene sentido para usted?"},
	{"CL1", "RC", "Reconocimiento y claridad de rol", "Su trabajo, ¿tiene objetivos claros?"},
	{"CL2", "RC", "Reconocimiento y claridad de rol", "En su trabajo, ¿sabe exactamente qué tareas son de su responsabilidad?"},
	{"CL3", "RC", "Reconocimiento y claridad de rol", "¿Sabe exactamente lo que se espera de usted en el trabajo?"},
	{"CO2", "CR", "Conflicto de rol", "En su trabajo, ¿se le exigen cosas contradictorias?"},
	{"CO3", "CR", "Conflicto de rol", "¿Tiene que hacer tareas que usted cree que deberían hacerse de otra manera?"},
	{"IT1", "CR", "Conflicto de rol", "¿Tiene que realizar tareas que le parecen innecesarias?"},
	{"QL3", "QL", "Calidad del liderazgo", "Su superior inmediato, ¿planifica bien el trabajo?"},
	{"QL4", "QL", "Calidad del liderazgo", "Su superior inmediato, ¿resuelve bien los conflictos?"},
	{"SS1", "QL", "Calidad del liderazgo", "Si usted lo necesita, ¿con qué frecuencia su superior inmediato está dispuesto a escuchar sus problemas?"},
	{"SS2", "QL", "Calidad del liderazgo", "Si usted lo necesita, ¿con qué frecuencia obtiene ayuda y apoyo de su superior inmediato?"},
	{"SC1", "CM", "Compañerismo", "De ser necesario, ¿con qué frecuencia obtiene ayuda y apoyo de sus compañeros(as) de trabajo?"},
	{"SC2", "CM", "Compañerismo", "De ser necesario, ¿con qué frecuencia sus compañeros(as) de trabajo están dispuestos(as) a escuchar problemas?"},
	{"SW1", "CM", "Compañerismo", "¿Hay un buen ambiente entre usted y sus compañeros(as) de trabajo?"},
	{"SW3", "CM", "Compañerismo", "En su trabajo, ¿usted siente que forma parte de un equipo?"},
	{"IW1", "IT", "Inseguridad en las condiciones de trabajo", "¿Está preocupado(a) de que le cambien sus tareas laborales en contra de su voluntad?"},
	{"IW2", "IT", "Inseguridad en las condiciones de trabajo", "¿Está preocupado(a) por si le trasladan a otro lugar de trabajo, obra, funciones, unidad, departamento o sección en contra de su voluntad?"},
	{"IW3", "IT", "Inseguridad en las condiciones de trabajo", "¿Está preocupado(a) de que le cambien el horario (turnos, días de la semana, hora de entrada y salida) en contra de su voluntad?"},
	{"WF2", "TV", "Equilibrio trabajo y vida privada", "¿Siente que su trabajo le consume demasiada ENERGÍA teniendo un efecto negativo en su vida privada?"},
	{"WF3", "TV", "Equilibrio trabajo y vida privada", "¿Siente que su trabajo le consume demasiado TIEMPO teniendo un efecto negativo en su vida privada?"},
	{"WF5", "TV", "Equilibrio trabajo y vida privada", "Las exigencias de su trabajo, ¿interfieren con su vida privada y familiar?"},
	{"TE1", "CJ", "Confianza y justicia organizacional", "En general, ¿los trabajadores(as) en su organización confían entre sí?"},
	{"TM1", "CJ", "Confianza y justicia organizacional", "¿Los gerentes o directivos confían en que los trabajadores(as) hacen bien su trabajo?"},
	{"TM2", "CJ", "Confianza y justicia organizacional", "¿Los trabajadores(as) confían en la información que proviene de los gerentes, directivos o empleadores?"},
	{"TM4", "CJ", "Confianza y justicia organizacional", "¿Los trabajadores(as) pueden expresar sus opiniones y sentimientos?"},
	{"JU1", "CJ", "Confianza y justicia organizacional", "En su trabajo, ¿los conflictos se resuelven de manera justa?"},
	{"JU2", "CJ", "Confianza y justicia organizacional", "¿Se valora a los trabajadores(as) cuando han hecho un buen trabajo?"},
	{"JU4", "CJ", "Confianza y justicia organizacional", "¿Se distribuye el trabajo de manera justa?"},
	{"VU1", "VU", "Vulnerabilidad", "¿Tiene miedo a pedir mejores condiciones de trabajo?"},
	{"VU2", "VU", "Vulnerabilidad", "¿Se siente indefenso(a) ante el trato injusto de sus superiores?"},
	{"VU3", "VU", "Vulnerabilidad", "¿Tiene miedo de que lo(la) despidan si no hace lo que le piden?"},
	{"VU4", "VU", "Vulnerabilidad", "¿Considera que sus superiores lo(la) tratan de forma discriminatoria o injusta?"},
	{"VU5", "VU", "Vulnerabilidad", "¿Considera que lo(la) tratan de forma autoritaria o violenta?"},
	{"VU6", "VU", "Vulnerabilidad", "¿Lo(la) hacen sentir que usted puede ser fácilmente reemplazado(a)?"},
	{"CQ1", "VA", "Violencia y acoso", "En su trabajo, durante los últimos 12 meses, ¿ha estado involucrado(a) en disputas o conflictos?"},
	{"UT1", "VA", "Violencia y acoso", "En su trabajo, durante los últimos 12 meses, ¿ha estado expuesto(a) a bromas desagradables?"},
	{"HSM1", "VA", "Violencia y acoso", "En los últimos 12 meses, ¿ha estado expuesto(a) a acoso relacionado al trabajo por correo electrónico, mensajes de texto y/o en las redes sociales (por ejemplo, Facebook, Instagram, Twitter)?"},
	{"SH1", "VA", "Violencia y acoso", "En su trabajo, durante los últimos 12 meses, ¿ha estado expuesta(o) a acoso sexual?"},
	{"PV1", "VA", "Violencia y acoso", "En su trabajo, en los últimos 12 meses, ¿ha estado expuesta(o) a violencia física?"},
	{"AL", "VA", "Violencia y acoso", "En su trabajo, en los últimos 12 meses, ¿ha estado expuesto(a) a bullying o acoso?"},
	{"HO", "VA", "Violencia y acoso", "¿Con qué frecuencia se siente intimidado(a), colocado(a) en ridículo o injustamente criticado(a), frente a otros por sus compañeros(as) de trabajo o su superior?"},
	{"GHQ1", "GHQ", "Cuestionario de salud general", "¿Ha podido concentrarse bien en lo que hace?"},
	{"GHQ2", "GHQ", "Cuestionario de salud general", "¿Sus preocupaciones le han hecho perder mucho sueño?"},
	{"GHQ3", "GHQ", "Cuestionario de salud general", "¿Ha sentido que está jugando un papel útil en la vida?"},
	{"GHQ4", "GHQ", "Cuestionario de salud general", "¿Se ha sentido capaz de tomar decisiones?"},
	{"GHQ5", "GHQ", "Cuestionario de salud general", "¿Se ha sentido constantemente agobiado(a) y en tensión?"},
	{"GHQ6", "GHQ", "Cuestionario de salud general", "¿Ha sentido que no puede superar sus dificultades?"},
	{"GHQ7", "GHQ", "Cuestionario de salud general", "¿Ha sido capaz de disfrutar sus actividades normales de cada día?"},
	{"GHQ8", "GHQ", "Cuestionario de salud general", "¿Ha sido capaz de hacer frente a sus problemas?"},
	{"GHQ9", "GHQ", "Cuestionario de salud general", "¿Se ha sentido poco feliz y deprimido(a)?"},
	{"GHQ10", "GHQ", "Cuestionario de salud general", "¿Ha perdido confianza en sí mismo?"},
	{"GHQ11", "GHQ", "Cuestionario de salud general", "¿Ha pensado que usted es una persona que no vale para nada?"},
	{"GHQ12", "GHQ", "Cuestionario de salud general", "¿Se siente razonablemente feliz considerando todas las circunstancias?"},
}

// riskIntervals is the band table of the 12 scored dimensions. The GHQ
// block deliberately has no row here. Bounds are inclusive on both ends.
var riskIntervals = []Interval{
	{"Carga de trabajo", Range{0, 1}, Range{2, 4}, Range{5, 12}},
	{"Exigencias emocionales", Range{0, 1}, Range{2, 5}, Range{6, 12}},
	{"Desarrollo profesional", Range{0, 1}, Range{2, 5}, Range{6, 12}},
	{"Reconocimiento y claridad de rol", Range{0, 4}, Range{5, 9}, Range{10, 32}},
	{"Conflicto de rol", Range{0, 2}, Range{3, 5}, Range{6, 12}},
	{"Calidad del liderazgo", Range{0, 2}, Range{3, 7}, Range{8, 16}},
	{"Compañerismo", Range{0, 0}, Range{1, 4}, Range{5, 16}},
	{"Inseguridad en las condiciones de trabajo", Range{0, 2}, Range{3, 5}, Range{6, 12}},
	{"Equilibrio trabajo y vida privada", Range{0, 2}, Range{3, 5}, Range{6, 12}},
	{"Confianza y justicia organizacional", Range{0, 7}, Range{8, 12}, Range{13, 28}},
	{"Violencia y acoso", Range{0, 0}, Range{1, 14}, Range{15, 28}},
	{"Vulnerabilidad", Range{1, 6}, Range{7, 11}, Range{12, 24}},
}

// ExposureCompositeCode labels the "any exposure" composite flag in the
// violence analysis output.
const ExposureCompositeCode = "Expo_total"

// violenceThemes lists the seven violence/harassment exposure items plus
// the composite, in report order.
var violenceThemes = []Theme{
	{"CQ1", "Disputas o conflictos"},
	{"UT1", "Bromas desagradables"},
	{"HSM1", "Acoso virtual"},
	{"SH1", "Acoso sexual"},
	{"PV1", "Violencia física"},
	{"AL", "Bullying o acoso"},
	{"HO", "Humillaciones"},
	{ExposureCompositeCode, "Exposicion a violencia"},
}

// protectiveThemes lists the six supervisor/peer support items.
var protectiveThemes = []Theme{
	{"SS1", "superior1"},
	{"SS2", "superior2"},
	{"SC1", "compañeros1"},
	{"SC2", "compañeros2"},
	{"SW1", "oficina1"},
	{"SW3", "oficina2"},
}
