package repository

// SequenceRepository define el puerto del consecutivo de documentos (DIP).
type SequenceRepository interface {
	// NextNumber reserva y retorna el siguiente número para el alcance
	// (empresa, tipo, año). La lectura y el incremento son una sola operación
	// atómica en el almacén; nunca read-max-then-write.
	NextNumber(companyID, kind string, year int) (int64, error)
}
